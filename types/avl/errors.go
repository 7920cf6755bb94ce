package avl

import "errors"

// Errors used by the package.
var (
	ErrTreeNodeDuplicate = errors.New("tree node with the same key already exists")
	ErrTreeNodeNotFound  = errors.New("tree node is not found")
)
