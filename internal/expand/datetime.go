package expand

import (
	"fmt"
	"strconv"

	"github.com/buildstamp/buildstamp/internal/facts"
	"github.com/buildstamp/buildstamp/pkg/stamp"
)

func opDate() Operation {
	meta := Metadata{
		Name:        "date",
		Family:      FamilyDateTime,
		Result:      "stamp.Date",
		Description: "Calendar date of the build as a structured value",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileDate",
		Expand: func(f *facts.Facts) (Literal, error) {
			d, _ := stamp.Split(f.Moment())
			return Literal{
				Metadata: meta,
				Ident:    "CompileDate",
				Decl:     DeclVar,
				Expr:     fmt.Sprintf("stamp.MustDate(%d, %d, %d)", d.Year, int(d.Month), d.Day),
				Value:    d.String(),
				Imports:  []string{StampImport},
			}, nil
		},
	}
}

func opDateString() Operation {
	meta := Metadata{
		Name:        "date_str",
		Family:      FamilyDateTime,
		Result:      "string",
		Description: "Calendar date of the build as zero-padded YYYY-MM-DD",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileDateString",
		Expand: func(f *facts.Facts) (Literal, error) {
			d, _ := stamp.Split(f.Moment())
			return stringLiteral(meta, "CompileDateString", d.String()), nil
		},
	}
}

func opTime() Operation {
	meta := Metadata{
		Name:        "time",
		Family:      FamilyDateTime,
		Result:      "stamp.Clock",
		Description: "Wall-clock time of the build as a structured value",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileClock",
		Expand: func(f *facts.Facts) (Literal, error) {
			_, c := stamp.Split(f.Moment())
			return Literal{
				Metadata: meta,
				Ident:    "CompileClock",
				Decl:     DeclVar,
				Expr:     fmt.Sprintf("stamp.MustClock(%d, %d, %d)", c.Hour, c.Minute, c.Second),
				Value:    c.String(),
				Imports:  []string{StampImport},
			}, nil
		},
	}
}

func opTimeString() Operation {
	meta := Metadata{
		Name:        "time_str",
		Family:      FamilyDateTime,
		Result:      "string",
		Description: "Wall-clock time of the build as zero-padded HH:MM:SS",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileTimeString",
		Expand: func(f *facts.Facts) (Literal, error) {
			_, c := stamp.Split(f.Moment())
			return stringLiteral(meta, "CompileTimeString", c.String()), nil
		},
	}
}

func opDateTime() Operation {
	meta := Metadata{
		Name:        "datetime",
		Family:      FamilyDateTime,
		Result:      "time.Time",
		Description: "Combined UTC date and time of the build as a structured value",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileDateTime",
		Expand: func(f *facts.Facts) (Literal, error) {
			d, c := stamp.Split(f.Moment())
			return Literal{
				Metadata: meta,
				Ident:    "CompileDateTime",
				Decl:     DeclVar,
				Expr: fmt.Sprintf("stamp.MustDateTime(%d, %d, %d, %d, %d, %d)",
					d.Year, int(d.Month), d.Day, c.Hour, c.Minute, c.Second),
				Value:   datetimeString(d, c),
				Imports: []string{StampImport},
			}, nil
		},
	}
}

func opDateTimeString() Operation {
	meta := Metadata{
		Name:        "datetime_str",
		Family:      FamilyDateTime,
		Result:      "string",
		Description: "Combined UTC date and time of the build as YYYY-MM-DDTHH:MM:SSZ",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileDateTimeString",
		Expand: func(f *facts.Facts) (Literal, error) {
			d, c := stamp.Split(f.Moment())
			return stringLiteral(meta, "CompileDateTimeString", datetimeString(d, c)), nil
		},
	}
}

func opUnix() Operation {
	meta := Metadata{
		Name:        "unix",
		Family:      FamilyDateTime,
		Result:      "int64",
		Description: "Build instant as seconds since the Unix epoch",
	}
	return Operation{
		Metadata: meta,
		Ident:    "CompileUnix",
		Expand: func(f *facts.Facts) (Literal, error) {
			unix := f.Moment().Unix()
			return Literal{
				Metadata: meta,
				Ident:    "CompileUnix",
				Decl:     DeclConst,
				Type:     "int64",
				Expr:     strconv.FormatInt(unix, 10),
				Value:    strconv.FormatInt(unix, 10),
			}, nil
		},
	}
}

func datetimeString(d stamp.Date, c stamp.Clock) string {
	return d.String() + "T" + c.String() + "Z"
}

func stringLiteral(meta Metadata, ident, value string) Literal {
	return Literal{
		Metadata: meta,
		Ident:    ident,
		Decl:     DeclConst,
		Expr:     strconv.Quote(value),
		Value:    value,
	}
}
