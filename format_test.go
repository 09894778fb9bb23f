package chmgen

import (
	"strings"
	"testing"
)

func TestDefaultFormat(t *testing.T) {
	f := DefaultFormat()
	if f.Width != 76 || f.Indent != 4 || f.Delimiter != ", " {
		t.Fatalf("DefaultFormat() = %+v, want width 76, indent 4, delimiter %q", f, ", ")
	}
}

func TestIntsWrapNarrow(t *testing.T) {
	f := Format{Width: 10, Indent: 2, Delimiter: ", "}
	got := f.Ints([]int32{111, 222, 333})
	// Nothing fits on the first line because of the column budget consumed
	// by the surrounding template text.
	want := "\n  111,\n  222,\n  333"
	if got != want {
		t.Fatalf("Ints = %q, want %q", got, want)
	}
}

func TestIntsWrapDefaultWidth(t *testing.T) {
	vals := make([]int32, 20)
	for i := range vals {
		vals[i] = int32(10 + i)
	}
	got := DefaultFormat().Ints(vals)
	want := "10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23,\n" +
		"    24, 25, 26, 27, 28, 29"
	if got != want {
		t.Fatalf("Ints = %q, want %q", got, want)
	}
}

func TestIntsSingleElement(t *testing.T) {
	if got := DefaultFormat().Ints([]int32{7}); got != "7" {
		t.Fatalf("Ints = %q, want %q", got, "7")
	}
}

func TestIntsEmpty(t *testing.T) {
	if got := DefaultFormat().Ints(nil); got != "" {
		t.Fatalf("Ints(nil) = %q, want empty", got)
	}
}

func TestStringsQuotes(t *testing.T) {
	f := Format{Width: 1 << 20, Delimiter: ", "}
	got := f.Strings([]string{"a", `b"c`, "d\n"})
	want := `"a", "b\"c", "d\n"`
	if got != want {
		t.Fatalf("Strings = %q, want %q", got, want)
	}
}

func TestZeroFormatWrapsEveryElement(t *testing.T) {
	var f Format
	got := f.Ints([]int32{1, 2, 3})
	want := "\n1\n2\n3"
	if got != want {
		t.Fatalf("Ints = %q, want %q", got, want)
	}
}

func TestNegativeIndentClamps(t *testing.T) {
	f := Format{Width: 5, Indent: -3, Delimiter: ","}
	got := f.Ints([]int32{11, 22})
	want := "\n11,\n22"
	if got != want {
		t.Fatalf("Ints = %q, want %q", got, want)
	}
}

func TestWrapLinesStayInBudget(t *testing.T) {
	rng := newTestRNG(t)
	vals := make([]int32, 300)
	for i := range vals {
		vals[i] = rng.Int32()
	}
	f := DefaultFormat()

	for _, rendered := range []string{f.Ints(vals), f.Strings(genKeys(rng, 200))} {
		lines := strings.Split(rendered, "\n")
		for i, line := range lines {
			if len(line) > f.Width {
				t.Errorf("line %d is %d columns, want <= %d: %q", i+1, len(line), f.Width, line)
			}
			if i > 0 && !strings.HasPrefix(line, "    ") {
				t.Errorf("continuation line %d is not indented: %q", i+1, line)
			}
			if strings.TrimRight(line, " \t") != line {
				t.Errorf("line %d has trailing whitespace: %q", i+1, line)
			}
		}
	}
}
