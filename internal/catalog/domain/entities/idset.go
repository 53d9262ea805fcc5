package entities

// IDSet - множество идентификаторов с сохранением порядка вставки.
type IDSet struct {
	order []int64
	index map[int64]struct{}
}

// NewIDSet создает множество из ids. Повторы отбрасываются.
func NewIDSet(ids ...int64) *IDSet {
	s := &IDSet{index: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add добавляет id и сообщает, изменилось ли множество.
func (s *IDSet) Add(id int64) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Remove удаляет id и сообщает, изменилось ли множество.
func (s *IDSet) Remove(id int64) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains проверяет наличие id.
func (s *IDSet) Contains(id int64) bool {
	_, ok := s.index[id]
	return ok
}

// Len возвращает размер множества.
func (s *IDSet) Len() int {
	return len(s.order)
}

// Values возвращает копию идентификаторов в порядке вставки.
func (s *IDSet) Values() []int64 {
	return append([]int64{}, s.order...)
}

// Intersect возвращает общие с other идентификаторы в порядке s.
func (s *IDSet) Intersect(other *IDSet) []int64 {
	out := []int64{}
	for _, id := range s.order {
		if other.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
