package traverse

import (
	"iter"

	"github.com/mwantia/traverse/data"
)

// descendLastIterator yields a directory's entries before expanding its
// subdirectories. The root comes first.
type descendLastIterator struct {
	*walker
}

func (it *descendLastIterator) init() error {
	return it.openRoot()
}

func (it *descendLastIterator) HasNext() (bool, error) {
	if err := it.initialize(it.init); err != nil {
		return false, err
	}

	if it.rootPending {
		return true, nil
	}

	for len(it.stack) > 0 {
		top := it.top()
		if top.iterateHasNext() {
			return true, nil
		}

		if top.descendHasNext() {
			dir := top.descendNext()
			if err := it.descendInto(dir, top.depth); err != nil {
				return false, it.fail(err)
			}
			continue
		}

		it.pop()
	}

	return false, nil
}

func (it *descendLastIterator) Next() (*data.Entry, error) {
	ok, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIterationExhausted
	}

	if it.rootPending {
		it.rootPending = false
		return it.root, nil
	}

	return it.top().iterateNext(), nil
}

func (it *descendLastIterator) All() iter.Seq2[*data.Entry, error] {
	return all(it)
}
