package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harness/nexus-migrate/module/migrate/types"

	"github.com/pterm/pterm"
)

// TransformToTree builds a directory tree from relative paths. Node keys are
// the relative path of the node, directories keep their trailing slash.
func TransformToTree(paths []string) *types.TreeNode {
	root := types.TreeNode{
		Name:     "root",
		Key:      "",
		Children: []types.TreeNode{},
		IsLeaf:   false,
	}

	for _, p := range paths {
		pathComponents := strings.Split(strings.TrimPrefix(p, "/"), "/")
		currentNode := &root

		for i, component := range pathComponents {
			if component == "" {
				continue
			}
			isLast := i == len(pathComponents)-1

			childIndex := -1
			for j, child := range currentNode.Children {
				if child.Name == component && child.IsLeaf == isLast {
					childIndex = j
					break
				}
			}

			if childIndex >= 0 {
				currentNode = &currentNode.Children[childIndex]
				continue
			}

			key := currentNode.Key + component
			if !isLast {
				key += "/"
			}
			currentNode.Children = append(currentNode.Children, types.TreeNode{
				Name:     component,
				Key:      key,
				Children: []types.TreeNode{},
				IsLeaf:   isLast,
			})
			currentNode = &currentNode.Children[len(currentNode.Children)-1]
		}
	}

	sortTreeNodes(&root)
	return &root
}

// sortTreeNodes sorts the children of a TreeNode alphabetically
// Directories come before files and nodes are sorted by name
func sortTreeNodes(node *types.TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		if !node.Children[i].IsLeaf && node.Children[j].IsLeaf {
			return true
		}
		if node.Children[i].IsLeaf && !node.Children[j].IsLeaf {
			return false
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for i := range node.Children {
		if !node.Children[i].IsLeaf {
			sortTreeNodes(&node.Children[i])
		}
	}
}

// GetNodeForPath returns the directory or file node at path.
func GetNodeForPath(root *types.TreeNode, path string) (*types.TreeNode, error) {
	if root == nil {
		return nil, fmt.Errorf("root node is nil")
	}
	components := strings.Split(strings.Trim(path, "/"), "/")

	currentNode := root
	for _, component := range components {
		if component == "" {
			continue
		}

		found := false
		for i := range currentNode.Children {
			if currentNode.Children[i].Name == component {
				currentNode = &currentNode.Children[i]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("path not found: %s (component '%s' not found)", path, component)
		}
	}

	return currentNode, nil
}

// LeafPaths returns the relative path of every file below node, in tree order.
func LeafPaths(node *types.TreeNode) []string {
	if node == nil {
		return nil
	}
	var paths []string
	collectLeaves(node, &paths)
	return paths
}

func collectLeaves(node *types.TreeNode, paths *[]string) {
	if node.IsLeaf {
		*paths = append(*paths, node.Key)
	}
	for i := range node.Children {
		collectLeaves(&node.Children[i], paths)
	}
}

// ToPterm converts node for rendering with pterm.DefaultTree.
func ToPterm(node *types.TreeNode) pterm.TreeNode {
	out := pterm.TreeNode{Text: node.Name}
	if !node.IsLeaf && node.Key != "" {
		out.Text += "/"
	}
	for i := range node.Children {
		out.Children = append(out.Children, ToPterm(&node.Children[i]))
	}
	return out
}
