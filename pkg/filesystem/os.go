package filesystem

import (
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/spf13/afero"
)

// NewOS returns the real filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}
