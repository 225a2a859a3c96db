package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cvent/delivery-cluster/internal/config"
)

// Hostname prints the short hostname of one role instance.
func Hostname(g Globals, roleArg, indexArg string) error {
	role, index, err := parseInstance(roleArg, indexArg)
	if err != nil {
		return err
	}

	r, err := newResolver(g)
	if err != nil {
		return err
	}

	hostname, err := r.ResolveHostname(role, index)
	if err != nil {
		return err
	}
	fmt.Println(hostname)
	return nil
}

// FQDN prints the address of one role instance.
func FQDN(ctx context.Context, g Globals, roleArg, indexArg string) error {
	role, index, err := parseInstance(roleArg, indexArg)
	if err != nil {
		return err
	}

	r, err := newResolver(g)
	if err != nil {
		return err
	}

	fqdn, err := r.ResolveFQDN(ctx, role, index)
	if err != nil {
		return err
	}
	fmt.Println(fqdn)
	return nil
}

// parseInstance parses "<role> [index]". A missing index is 0.
func parseInstance(roleArg, indexArg string) (config.Role, int, error) {
	role, err := config.ParseRole(roleArg)
	if err != nil {
		return "", 0, err
	}
	if indexArg == "" {
		return role, 0, nil
	}
	index, err := strconv.Atoi(indexArg)
	if err != nil {
		return "", 0, fmt.Errorf("invalid index %q: %w", indexArg, err)
	}
	return role, index, nil
}
