package expand

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/buildstamp/buildstamp/internal/facts"
)

// cachedVersion reads the version cache, wrapping a stored failure in the
// fatal diagnostic every version operation must raise identically.
func cachedVersion(op string, f *facts.Facts) (*semver.Version, error) {
	v, err := f.Version()
	if err != nil {
		return nil, &Fatal{Op: op, Err: err}
	}
	return v, nil
}

func opVersion() Operation {
	meta := Metadata{
		Name:        "version",
		Family:      FamilyVersion,
		Result:      "*semver.Version",
		Description: "Go toolchain version as a structured semantic version",
	}
	return Operation{
		Metadata: meta,
		Ident:    "ToolchainVersion",
		Expand: func(f *facts.Facts) (Literal, error) {
			v, err := cachedVersion(meta.Name, f)
			if err != nil {
				return Literal{}, err
			}
			return Literal{
				Metadata: meta,
				Ident:    "ToolchainVersion",
				Decl:     DeclVar,
				Expr:     fmt.Sprintf("semver.MustParse(%s)", strconv.Quote(v.String())),
				Value:    v.String(),
				Imports:  []string{SemverImport},
			}, nil
		},
	}
}

func opVersionString() Operation {
	meta := Metadata{
		Name:        "version_str",
		Family:      FamilyVersion,
		Result:      "string",
		Description: "Go toolchain version in canonical semantic-version form",
	}
	return Operation{
		Metadata: meta,
		Ident:    "ToolchainVersionString",
		Expand: func(f *facts.Facts) (Literal, error) {
			v, err := cachedVersion(meta.Name, f)
			if err != nil {
				return Literal{}, err
			}
			return stringLiteral(meta, "ToolchainVersionString", v.String()), nil
		},
	}
}

func opVersionMajor() Operation {
	return numericVersionOp("version_major", "ToolchainVersionMajor",
		"Go toolchain major version", func(v *semver.Version) uint64 { return v.Major() })
}

func opVersionMinor() Operation {
	return numericVersionOp("version_minor", "ToolchainVersionMinor",
		"Go toolchain minor version", func(v *semver.Version) uint64 { return v.Minor() })
}

func opVersionPatch() Operation {
	return numericVersionOp("version_patch", "ToolchainVersionPatch",
		"Go toolchain patch version", func(v *semver.Version) uint64 { return v.Patch() })
}

func opVersionPre() Operation {
	meta := Metadata{
		Name:        "version_pre",
		Family:      FamilyVersion,
		Result:      "string",
		Description: "Go toolchain pre-release identifier, empty when absent",
	}
	return Operation{
		Metadata: meta,
		Ident:    "ToolchainVersionPre",
		Expand: func(f *facts.Facts) (Literal, error) {
			v, err := cachedVersion(meta.Name, f)
			if err != nil {
				return Literal{}, err
			}
			return stringLiteral(meta, "ToolchainVersionPre", v.Prerelease()), nil
		},
	}
}

func opVersionBuild() Operation {
	meta := Metadata{
		Name:        "version_build",
		Family:      FamilyVersion,
		Result:      "string",
		Description: "Go toolchain build metadata identifier, empty when absent",
	}
	return Operation{
		Metadata: meta,
		Ident:    "ToolchainVersionBuild",
		Expand: func(f *facts.Facts) (Literal, error) {
			v, err := cachedVersion(meta.Name, f)
			if err != nil {
				return Literal{}, err
			}
			return stringLiteral(meta, "ToolchainVersionBuild", v.Metadata()), nil
		},
	}
}

func numericVersionOp(name, ident, description string, field func(*semver.Version) uint64) Operation {
	meta := Metadata{
		Name:        name,
		Family:      FamilyVersion,
		Result:      "uint64",
		Description: description,
	}
	return Operation{
		Metadata: meta,
		Ident:    ident,
		Expand: func(f *facts.Facts) (Literal, error) {
			v, err := cachedVersion(name, f)
			if err != nil {
				return Literal{}, err
			}
			n := field(v)
			return Literal{
				Metadata: meta,
				Ident:    ident,
				Decl:     DeclConst,
				Type:     "uint64",
				Expr:     strconv.FormatUint(n, 10),
				Value:    strconv.FormatUint(n, 10),
			}, nil
		},
	}
}
