package chat

import (
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// Extract returns the code blocks carried by an enhanced chat response. The
// backend does the fenced-code parsing and decides applicability; the client
// only validates structure. An absent or empty code_blocks field yields an
// empty sequence, which is not an error.
func Extract(resp *backend.EnhancedChatResponse) []types.CodeBlock {
	if resp == nil || len(resp.CodeBlocks) == 0 {
		return nil
	}
	blocks := make([]types.CodeBlock, len(resp.CodeBlocks))
	copy(blocks, resp.CodeBlocks)
	return blocks
}
