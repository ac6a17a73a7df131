package mdast

// NewNode allocates a detached node of the given kind: no parent, no
// children, and no token association yet.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: -1,
		LastToken:  -1,
	}
}

// NewDocument allocates a fresh document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// detach unlinks child from whatever tree it currently sits in, leaving its
// own Parent/Prev/Next pointers untouched for the caller to set. It is a
// no-op when child has no parent.
func detach(child *Node) {
	if child == nil || child.Parent == nil {
		return
	}
	RemoveChild(child.Parent, child)
}

// AppendChild links child as the new last child of parent, relinking it out
// of any prior tree first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)

	child.Parent = parent
	child.Next = nil
	child.Prev = parent.LastChild

	switch {
	case parent.LastChild != nil:
		parent.LastChild.Next = child
	default:
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// PrependChild links child as the new first child of parent, relinking it
// out of any prior tree first.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	switch {
	case parent.FirstChild != nil:
		parent.FirstChild.Prev = child
	default:
		parent.LastChild = child
	}
	parent.FirstChild = child
}

// InsertBefore splices newNode into sibling's child list immediately ahead
// of it. sibling must already be attached to a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	parent := sibling.Parent
	detach(newNode)

	newNode.Parent = parent
	newNode.Next = sibling
	newNode.Prev = sibling.Prev

	if prior := sibling.Prev; prior != nil {
		prior.Next = newNode
	} else {
		parent.FirstChild = newNode
	}
	sibling.Prev = newNode
}

// InsertAfter splices newNode into sibling's child list immediately behind
// it. sibling must already be attached to a parent.
func InsertAfter(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	parent := sibling.Parent
	detach(newNode)

	newNode.Parent = parent
	newNode.Prev = sibling
	newNode.Next = sibling.Next

	if following := sibling.Next; following != nil {
		following.Prev = newNode
	} else {
		parent.LastChild = newNode
	}
	sibling.Next = newNode
}

// RemoveChild unlinks child from parent's sibling chain. It does nothing if
// child does not currently belong to parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if before := child.Prev; before != nil {
		before.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if after := child.Next; after != nil {
		after.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent, child.Prev, child.Next = nil, nil, nil
}

// ReplaceChild swaps newChild into the position currently held by oldChild
// under parent. oldChild is fully detached as a result.
func ReplaceChild(parent, oldChild, newChild *Node) {
	if parent == nil || oldChild == nil || newChild == nil || oldChild.Parent != parent {
		return
	}
	detach(newChild)

	newChild.Parent = parent
	newChild.Prev = oldChild.Prev
	newChild.Next = oldChild.Next

	if before := oldChild.Prev; before != nil {
		before.Next = newChild
	} else {
		parent.FirstChild = newChild
	}

	if after := oldChild.Next; after != nil {
		after.Prev = newChild
	} else {
		parent.LastChild = newChild
	}

	oldChild.Parent, oldChild.Prev, oldChild.Next = nil, nil, nil
}

// SetTokenRange records the half-open-by-convention [first, last] token
// span that n was built from.
func SetTokenRange(n *Node, first, last int) {
	if n == nil {
		return
	}
	n.FirstToken = first
	n.LastToken = last
}

// SetFile stamps file onto node and every node in its subtree.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}
	//nolint:errcheck,revive // the visitor below never returns a non-nil error
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}
