package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 30
)

// TreeNode represents a node in the file tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

// RenderFileTree renders a file tree with descriptions aligned at a fixed
// column. files maps relative paths to their descriptions; rootName is the
// root directory name.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{
		Name:     rootName,
		IsDir:    true,
		Children: []*TreeNode{},
	}

	for path, desc := range files {
		parts := strings.Split(filepath.ToSlash(path), "/")
		current := root

		for i, part := range parts {
			isLast := i == len(parts)-1

			var child *TreeNode
			for _, c := range current.Children {
				if c.Name == part {
					child = c
					break
				}
			}

			if child == nil {
				child = &TreeNode{Name: part}
				current.Children = append(current.Children, child)
			}

			if isLast {
				if child.Description == "" {
					child.Description = desc
				}
			} else {
				// A name can appear both as a leaf and as a parent of a
				// deeper path; descending through it makes it a directory.
				child.IsDir = true
			}

			current = child
		}
	}

	sortTree(root)

	var b strings.Builder
	b.WriteString(root.Name + "/\n")
	renderChildren(&b, root.Children, "")
	return b.String()
}

// sortTree sorts children recursively: directories first, then by name.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range node.Children {
		sortTree(c)
	}
}

// renderChildren renders tree nodes with box-drawing prefixes.
func renderChildren(b *strings.Builder, children []*TreeNode, prefix string) {
	for i, child := range children {
		isLast := i == len(children)-1

		edge := treeEdge
		if isLast {
			edge = treeLast
		}

		name := child.Name
		if child.IsDir {
			name += "/"
		}

		line := prefix + edge + name
		b.WriteString(line)

		if child.Description != "" {
			if pad := descriptionColumn - len([]rune(line)); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			} else {
				b.WriteString("  ")
			}
			b.WriteString(StyleDim.Render(child.Description))
		}
		b.WriteString("\n")

		childPrefix := prefix + treeVert
		if isLast {
			childPrefix = prefix + treeSpace
		}
		renderChildren(b, child.Children, childPrefix)
	}
}
