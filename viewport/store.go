package viewport

// store owns the transform. Every mutation goes through Set or Update, which
// recompute the derived Center from the live host size and then notify
// subscribers, so Center is never observed stale.
type store struct {
	transform *Cell[Transform]
	center    *Cell[Center]
	size      func() (width, height float64)

	subs   []subscriber
	nextID uint64
}

type subscriber struct {
	id uint64
	fn func(Transform)
}

func newStore(initial Transform, size func() (float64, float64)) *store {
	s := &store{
		transform: NewCell(initial),
		center:    NewCell(Center{}),
		size:      size,
	}
	s.recompute()
	return s
}

func (s *store) Get() Transform { return s.transform.Get() }
func (s *store) Center() Center { return s.center.Get() }
func (s *store) Set(t Transform) Transform {
	return s.Update(func(Transform) Transform { return t })
}

// Update applies f to the current transform.
func (s *store) Update(f func(Transform) Transform) Transform {
	t := s.transform.Update(f)
	s.recompute()
	s.notify(t)
	return t
}

// Refresh recomputes Center after a host resize and notifies subscribers.
func (s *store) Refresh() {
	s.recompute()
	s.notify(s.transform.Get())
}

func (s *store) recompute() {
	w, h := s.size()
	s.center.Set(centerOf(s.transform.Get(), w, h))
}

func (s *store) subscribe(fn func(Transform)) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *store) notify(t Transform) {
	if len(s.subs) == 0 {
		return
	}
	snapshot := make([]subscriber, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		sub.fn(t)
	}
}
