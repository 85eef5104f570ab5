package service

import "strings"

// BlockType names a parsed tips block
type BlockType string

const (
	BlockH1        BlockType = "h1"
	BlockH2        BlockType = "h2"
	BlockList      BlockType = "ul"
	BlockParagraph BlockType = "p"
)

// Block is one rendered unit of the tips text
type Block struct {
	Type    BlockType `json:"type"`
	Content string    `json:"content,omitempty"`
	Items   []string  `json:"items,omitempty"`
}

// ParseTips splits tips markdown into blocks. "# " and "## " lines are
// headings, "• " lines form a list, other lines join into a paragraph, and a
// blank line closes the open list or paragraph.
func ParseTips(text string) []Block {
	var blocks []Block
	var current *Block

	flush := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "# "):
			flush()
			blocks = append(blocks, Block{Type: BlockH1, Content: line[2:]})
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, Block{Type: BlockH2, Content: line[3:]})
		case strings.HasPrefix(line, "• "):
			if current == nil || current.Type != BlockList {
				flush()
				current = &Block{Type: BlockList}
			}
			current.Items = append(current.Items, strings.TrimPrefix(line, "• "))
		default:
			if current == nil || current.Type != BlockParagraph {
				flush()
				current = &Block{Type: BlockParagraph}
			}
			if current.Content != "" {
				current.Content += " "
			}
			current.Content += line
		}
	}
	flush()

	return blocks
}
