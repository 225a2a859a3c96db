package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cvent/delivery-cluster/internal/platform/s3"
	"github.com/cvent/delivery-cluster/internal/topology"
	"github.com/cvent/delivery-cluster/internal/util/naming"
)

// ExportOptions are the flags of the export command.
type ExportOptions struct {
	File string

	Bucket    string
	Key       string
	Endpoint  string
	Region    string
	PathStyle bool
	// AccessKey and SecretKey select static credentials; both or neither.
	AccessKey string
	SecretKey string

	// AllowPartial exports even when some nodes failed to resolve.
	AllowPartial bool
}

// topologyUploader is the object storage surface used by export.
type topologyUploader interface {
	UploadTopology(ctx context.Context, bucket, key string, doc []byte) error
}

// newUploader creates the object storage client - can be replaced in tests.
var newUploader = func(ctx context.Context, opts s3.Options) (topologyUploader, error) {
	return s3.NewClient(ctx, opts)
}

// Export resolves the topology and writes it as a JSON document to a file,
// an S3 bucket, or both.
func Export(ctx context.Context, g Globals, opts ExportOptions) error {
	if opts.File == "" && opts.Bucket == "" {
		return fmt.Errorf("nothing to export to: set --file or --s3-bucket")
	}
	if (opts.AccessKey == "") != (opts.SecretKey == "") {
		return fmt.Errorf("--s3-access-key and --s3-secret-key must be set together")
	}

	r, err := newResolver(g)
	if err != nil {
		return err
	}

	nodes, resolveErr := r.ResolveAll(ctx)
	if resolveErr != nil && !opts.AllowPartial {
		return fmt.Errorf("topology has unresolved nodes (use --allow-partial to export anyway): %w", resolveErr)
	}
	if resolveErr != nil {
		g.Log.Info("exporting partial topology", "error", resolveErr.Error())
	}

	cfg := r.Config()
	data, err := json.MarshalIndent(topology.NewDocument(cfg, nodes, now()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal topology: %w", err)
	}
	data = append(data, '\n')

	if opts.File != "" {
		if err := os.WriteFile(opts.File, data, 0o600); err != nil {
			return fmt.Errorf("failed to write topology file: %w", err)
		}
		fmt.Printf("Topology written to %s\n", opts.File)
	}

	if opts.Bucket != "" {
		key := opts.Key
		if key == "" {
			key = naming.TopologyObject(cfg.ID)
		}

		uploader, err := newUploader(ctx, s3.Options{
			Endpoint:  opts.Endpoint,
			Region:    opts.Region,
			AccessKey: opts.AccessKey,
			SecretKey: opts.SecretKey,
			PathStyle: opts.PathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to create object storage client: %w", err)
		}
		if err := uploader.UploadTopology(ctx, opts.Bucket, key, data); err != nil {
			return err
		}
		fmt.Printf("Topology uploaded to s3://%s/%s\n", opts.Bucket, key)
	}

	return nil
}
