// Package vectorutils is the vector store utility package
package vectorutils

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/vector"
	"github.com/ledgerlens/ledgerlens/pkg/vector/chroma"
	"github.com/ledgerlens/ledgerlens/pkg/vector/flat"
	"github.com/ledgerlens/ledgerlens/pkg/vector/sqlitevec"
)

type NewVectorDriverOpts struct {
	ProviderType string
	TargetURL    string
	Collection   string
	Dimensions   int
	Logger       *zap.Logger
}

// NewVectorDriver creates a fresh, session-scoped vector driver for the
// configured provider. Callers own the driver and must Close it when the
// retrieval session ends.
func NewVectorDriver(o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "", "flat":
		return flat.NewDriver(flat.Config{})
	case "sqlitevec":
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     ":memory:",
			Dimensions: uint(o.Dimensions),
		}, o.Logger)
	case "chroma":
		return chroma.NewDriver(chroma.Config{
			URL:            o.TargetURL,
			CollectionName: sessionCollectionName(o.Collection),
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}

// sessionCollectionName derives a unique collection name for one retrieval
// session. Remote stores keep collections alive across requests, so sharing
// the configured name would mix chunks from concurrent documents and let one
// session's Close delete another's live index. The configured name survives
// as a prefix for operability.
func sessionCollectionName(prefix string) string {
	if prefix == "" {
		prefix = chroma.DefaultCollectionName
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
