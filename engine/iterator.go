package engine

// ListIterator is an iterator for a proper list.
type ListIterator struct {
	List Term
	Env  *Env

	current Term
	err     error
}

// Next proceeds to the next element of the list and returns true if there's such an element.
func (i *ListIterator) Next() bool {
	switch l := i.Env.Resolve(i.List).(type) {
	case Variable:
		i.err = ErrInstantiation
		return false
	case *Pair:
		i.List = l.Rest
		i.current = l.First
		return true
	default:
		if !isNil(l) {
			i.err = &TypeError{Type: ValidTypeList, Culprit: l}
		}
		return false
	}
}

// Current returns the current element.
func (i *ListIterator) Current() Term {
	return i.current
}

// Err returns an error.
func (i *ListIterator) Err() error {
	return i.err
}

// suffix returns the rest of the list which is not iterated yet.
func (i *ListIterator) suffix() Term {
	return i.List
}

// Slice returns the elements of the list.
func Slice(list Term, env *Env) ([]Term, error) {
	var ret []Term
	iter := ListIterator{List: list, Env: env}
	for iter.Next() {
		ret = append(ret, env.Resolve(iter.Current()))
	}
	return ret, iter.Err()
}
