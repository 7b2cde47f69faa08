// FilePath: internal/report/tree.go
package report

import "github.com/Kraikuppp/webmeter-hub/internal/models"

// FindNodeByID walks the meter hierarchy depth-first and returns the
// first node with the given id, or nil when the id is absent or the
// tree is malformed.
func FindNodeByID(node *models.TreeNode, id string) *models.TreeNode {
	if node == nil || id == "" {
		return nil
	}
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := FindNodeByID(child, id); found != nil {
			return found
		}
	}
	return nil
}
