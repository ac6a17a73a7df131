package mdast

// WalkFunc visits a single node during a traversal. Returning a non-nil
// error aborts the walk and propagates that error to the caller.
type WalkFunc func(n *Node) error

// Walk traverses the subtree rooted at root in pre-order (node, then each
// child in document order), stopping early if fn returns an error.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkContextFunc is called on either the enter or leave edge of a
// WalkWithContext traversal.
type WalkContextFunc func(n *Node) error

// WalkWithContext traverses the subtree rooted at root, calling enter before
// descending into a node's children and leave after. Either callback may be
// nil to skip that edge.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}
	return nil
}

// WalkBlocks traverses root, invoking fn only for block-level nodes.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if !n.IsBlock() {
			return nil
		}
		return fn(n)
	})
}

// WalkInlines traverses root, invoking fn only for inline-level nodes.
func WalkInlines(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if !n.IsInline() {
			return nil
		}
		return fn(n)
	})
}

// errStopWalk short-circuits Walk from within FindFirst; it is never
// surfaced to callers outside this file.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string { return "stop walk" }

// FindAll collects every node in root's subtree for which predicate holds,
// in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var matches []*Node
	//nolint:errcheck,revive // the visitor below never returns a non-nil error
	Walk(root, func(n *Node) error {
		if predicate(n) {
			matches = append(matches, n)
		}
		return nil
	})
	return matches
}

// FindFirst returns the first node in document order for which predicate
// holds, or nil if the subtree contains no match.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var match *Node
	//nolint:errcheck,revive // errStopWalk is expected and intentionally discarded
	Walk(root, func(n *Node) error {
		if !predicate(n) {
			return nil
		}
		match = n
		return errStopWalk
	})
	return match
}

// FindByKind returns every node of the given kind within root's subtree.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
