package commands

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cvent/delivery-cluster/cmd/delivery-cluster/handlers"
)

// Static object storage credentials. Prefer the environment variables
// DELIVERY_CLUSTER_S3_ACCESS_KEY and DELIVERY_CLUSTER_S3_SECRET_KEY.
const (
	FlagS3AccessKey = "s3-access-key"
	FlagS3SecretKey = "s3-secret-key"
)

// Export returns the command that writes the resolved topology as JSON.
func Export() *cobra.Command {
	var opts handlers.ExportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the resolved topology as a JSON document",
		Long: `Resolve every node and write the topology document to a file,
an S3-compatible bucket, or both.

Object storage credentials come from --s3-access-key and --s3-secret-key
(or DELIVERY_CLUSTER_S3_ACCESS_KEY and DELIVERY_CLUSTER_S3_SECRET_KEY) when
given, and from the usual AWS environment variables and shared config
otherwise. The key defaults to <cluster id>/topology.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.AccessKey = viper.GetString(FlagS3AccessKey)
			opts.SecretKey = viper.GetString(FlagS3SecretKey)
			return run(func(g handlers.Globals) error {
				return handlers.Export(cmd.Context(), g, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Write the document to this file")
	cmd.Flags().StringVar(&opts.Bucket, "s3-bucket", "", "Upload the document to this bucket")
	cmd.Flags().StringVar(&opts.Key, "s3-key", "", "Object key (default <cluster id>/topology.json)")
	cmd.Flags().StringVar(&opts.Endpoint, "s3-endpoint", "", "Endpoint of an S3-compatible store")
	cmd.Flags().StringVar(&opts.Region, "s3-region", "", "Bucket region")
	cmd.Flags().BoolVar(&opts.PathStyle, "s3-path-style", false, "Use path-style bucket addressing")
	cmd.Flags().String(FlagS3AccessKey, "", "Static access key for the object store")
	cmd.Flags().String(FlagS3SecretKey, "", "Static secret key for the object store")
	cmd.Flags().BoolVar(&opts.AllowPartial, "allow-partial", false, "Export even if some nodes fail to resolve")

	lo.Must0(viper.BindPFlag(FlagS3AccessKey, cmd.Flags().Lookup(FlagS3AccessKey)))
	lo.Must0(viper.BindPFlag(FlagS3SecretKey, cmd.Flags().Lookup(FlagS3SecretKey)))

	return cmd
}
