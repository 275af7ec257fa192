// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import "context"

type attrsKey struct{}

// WithContext returns a context whose styling calls use attrs instead of the
// process-wide attributes.
func WithContext(ctx context.Context, a *TermAttributes) context.Context {
	return context.WithValue(ctx, attrsKey{}, a)
}

// FromContext returns the override in ctx, falling back to GetOrInit.
func FromContext(ctx context.Context) *TermAttributes {
	if ctx != nil {
		if a, ok := ctx.Value(attrsKey{}).(*TermAttributes); ok && a != nil {
			return a
		}
	}
	return GetOrInit()
}

// RoleStyle returns the style for a role under ctx's attributes.
func RoleStyle(ctx context.Context, r Role) Style {
	return FromContext(ctx).StyleFor(r)
}

// PaintRole renders text in a role's style under ctx's attributes.
func PaintRole(ctx context.Context, r Role, text string) string {
	return FromContext(ctx).Paint(r, text)
}
