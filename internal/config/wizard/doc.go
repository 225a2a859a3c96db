// Package wizard implements the interactive form behind `delivery-cluster init`.
//
// The form asks for the cluster identity, the driver, the roles to deploy
// and, for the ssh and local drivers, the connection defaults. BuildConfig
// turns the answers into a config.Config and WriteConfig stores it with a
// descriptive header.
package wizard
