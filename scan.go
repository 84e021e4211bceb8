// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"context"
	"math"
)

// ScanVisitFunc receives each derived address during a scan. Returning
// false stops the scan early with no error.
type ScanVisitFunc func(index uint32, addr *Address) bool

// ScanAddresses derives count consecutive addresses under base, starting at
// the given child index, and feeds each one to visit. The context is
// checked between every derivation so long scans remain cancellable; on
// cancellation the context's error is returned. Intermediate keys are wiped
// as the scan advances.
func ScanAddresses(ctx context.Context, root *ExtendedKey, base DerivationPath, start, count uint32, format Format, visit ScanVisitFunc) error {
	if count > 0 && start > math.MaxUint32-(count-1) {
		return &InvalidDerivationError{Index: start, Reason: "scan range exceeds the maximum child index"}
	}

	parent, err := root.Derive(base)
	if err != nil {
		return err
	}
	// Derive returns root itself for an empty base path; only wipe keys
	// this scan created.
	if parent != root {
		defer parent.Zero()
	}

	for i := uint32(0); i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		index := start + i
		child, err := parent.Child(index)
		if err != nil {
			return err
		}
		addr, err := child.Address(format)
		child.Zero()
		if err != nil {
			return err
		}
		if !visit(index, addr) {
			return nil
		}
	}
	return nil
}
