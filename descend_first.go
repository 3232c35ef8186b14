package traverse

import (
	"iter"

	"github.com/mwantia/traverse/data"
)

// descendFirstIterator expands every subdirectory before yielding the entries
// of its parent. The root comes last.
type descendFirstIterator struct {
	*walker
}

func (it *descendFirstIterator) init() error {
	if err := it.openRoot(); err != nil {
		return err
	}

	return it.descendDeepest()
}

// descendDeepest keeps opening the next subdirectory of the innermost level
// until that level has nothing left to descend into.
func (it *descendFirstIterator) descendDeepest() error {
	for len(it.stack) > 0 {
		top := it.top()
		if !top.descendHasNext() {
			return nil
		}

		dir := top.descendNext()
		if err := it.descendInto(dir, top.depth); err != nil {
			return err
		}
	}

	return nil
}

func (it *descendFirstIterator) HasNext() (bool, error) {
	if err := it.initialize(it.init); err != nil {
		return false, err
	}

	for len(it.stack) > 0 {
		if it.top().iterateHasNext() {
			return true, nil
		}

		it.pop()
		if err := it.descendDeepest(); err != nil {
			return false, it.fail(err)
		}
	}

	return it.rootPending, nil
}

func (it *descendFirstIterator) Next() (*data.Entry, error) {
	ok, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIterationExhausted
	}

	if len(it.stack) == 0 {
		it.rootPending = false
		return it.root, nil
	}

	return it.top().iterateNext(), nil
}

func (it *descendFirstIterator) All() iter.Seq2[*data.Entry, error] {
	return all(it)
}
