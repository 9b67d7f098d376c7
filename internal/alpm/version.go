// Package alpm implements pacman-style version comparison for
// epoch:pkgver-pkgrel strings.
package alpm

import (
	"errors"
	"strings"
)

// ErrInvalidVersion is returned when a version string cannot be parsed
var ErrInvalidVersion = errors.New("invalid version string")

// Comparison results
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// Version holds the three parts of a full pacman version string
type Version struct {
	Epoch   string // numeric, "" when absent (treated as 0)
	Pkgver  string
	Pkgrel  string // "" when absent
}

// Parse splits a version string into epoch, pkgver and pkgrel.
// The accepted form is [epoch:]pkgver[-pkgrel] where epoch is numeric.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrInvalidVersion
	}

	var v Version
	rest := s

	// Epoch is everything before the first colon
	if idx := strings.Index(rest, ":"); idx != -1 {
		epoch := rest[:idx]
		if epoch == "" || !isNumeric(epoch) {
			return Version{}, ErrInvalidVersion
		}
		v.Epoch = epoch
		rest = rest[idx+1:]
	}

	// Pkgrel is everything after the last hyphen
	if idx := strings.LastIndex(rest, "-"); idx != -1 {
		v.Pkgrel = rest[idx+1:]
		rest = rest[:idx]
	}

	if rest == "" {
		return Version{}, ErrInvalidVersion
	}
	v.Pkgver = rest

	return v, nil
}

// Compare orders two full version strings the way pacman does.
// Returns Less, Equal or Greater; an unparseable input yields
// ErrInvalidVersion and the caller decides the fate of that package.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}

	// Epoch dominates everything else
	if cmp := rpmvercmp(epochOrZero(va), epochOrZero(vb)); cmp != 0 {
		return cmp, nil
	}

	if cmp := rpmvercmp(va.Pkgver, vb.Pkgver); cmp != 0 {
		return cmp, nil
	}

	// Pkgrel only participates when both sides carry one; pacman treats
	// a missing rel as matching any rel
	if va.Pkgrel != "" && vb.Pkgrel != "" {
		return rpmvercmp(va.Pkgrel, vb.Pkgrel), nil
	}

	return Equal, nil
}

func epochOrZero(v Version) string {
	if v.Epoch == "" {
		return "0"
	}
	return v.Epoch
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}

// rpmvercmp compares two version segments using the alphanumeric block
// rules pacman inherited from rpm: blocks of digits compare numerically,
// blocks of letters lexically, digits always beat letters, and separators
// only delimit blocks.
func rpmvercmp(a, b string) int {
	if a == b {
		return Equal
	}

	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		// Skip separator runs on both sides
		for ia < len(a) && !isAlnum(a[ia]) {
			ia++
		}
		for ib < len(b) && !isAlnum(b[ib]) {
			ib++
		}
		if ia >= len(a) || ib >= len(b) {
			break
		}

		numeric := isDigit(a[ia])
		if numeric != isDigit(b[ib]) {
			// A numeric block is always newer than an alpha block
			if numeric {
				return Greater
			}
			return Less
		}

		ja, jb := ia, ib
		if numeric {
			for ja < len(a) && isDigit(a[ja]) {
				ja++
			}
			for jb < len(b) && isDigit(b[jb]) {
				jb++
			}
		} else {
			for ja < len(a) && isAlpha(a[ja]) {
				ja++
			}
			for jb < len(b) && isAlpha(b[jb]) {
				jb++
			}
		}

		sa, sb := a[ia:ja], b[ib:jb]
		if numeric {
			if cmp := compareNumeric(sa, sb); cmp != 0 {
				return cmp
			}
		} else {
			if cmp := strings.Compare(sa, sb); cmp != 0 {
				if cmp < 0 {
					return Less
				}
				return Greater
			}
		}

		ia, ib = ja, jb
	}

	// All shared blocks were equal; the remainder decides. A trailing
	// alpha block sorts older than nothing (1.0 > 1.0a), a trailing
	// numeric block sorts newer (1.0.1 > 1.0).
	for ia < len(a) && !isAlnum(a[ia]) {
		ia++
	}
	for ib < len(b) && !isAlnum(b[ib]) {
		ib++
	}

	switch {
	case ia >= len(a) && ib >= len(b):
		return Equal
	case ia >= len(a):
		if isAlpha(b[ib]) {
			return Greater
		}
		return Less
	default:
		if isAlpha(a[ia]) {
			return Less
		}
		return Greater
	}
}

// compareNumeric compares two digit blocks as numbers of arbitrary size
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		if len(a) < len(b) {
			return Less
		}
		return Greater
	}
	if cmp := strings.Compare(a, b); cmp != 0 {
		if cmp < 0 {
			return Less
		}
		return Greater
	}
	return Equal
}
