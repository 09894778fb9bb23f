package chmgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// Placeholders recognized in templates. Sequences ($G, $S1, $S2, $K) are
// wrapped by the Format; scalars substitute as plain decimals.
//
//	$NG      table size N
//	$NGMASK  N-1, for masking when N is a power of two
//	$G       vertex value table
//	$S1 $S2  the two salts
//	$NS      salt length (the longest key's byte length)
//	$NK      key count
//	$K       the key list, quoted
//
// ${NAME} is equivalent to $NAME, and $$ emits a literal dollar sign.
func (r *Result) placeholderValues(f Format) map[string]string {
	return map[string]string{
		"NG":     strconv.Itoa(r.TableSize),
		"NGMASK": strconv.Itoa(r.TableSize - 1),
		"G":      f.Ints(r.G),
		"S1":     r.F1.renderSalt(f),
		"S2":     r.F2.renderSalt(f),
		"NS":     strconv.Itoa(r.F1.SaltLen()),
		"NK":     strconv.Itoa(r.NumKeys),
		"K":      f.Strings(r.Keys),
	}
}

// Render expands template with the values of the generated function and
// returns the emitted code. An empty template selects the builtin Go
// template for the result's hash kind; the zero Format means DefaultFormat.
//
// Rendering is pure text formatting: the same Result, template and Format
// always produce byte-identical output.
//
// When the result was generated with WithPow2, every modulus by the table
// size (a `%` followed by $NG) is emitted as a bitwise AND with $NGMASK
// instead. The rewrite happens on the template text before substitution, so
// a numeric literal that happens to equal the table size is never touched.
func (r *Result) Render(template string, f Format) (string, error) {
	if template == "" {
		template = builtinTemplate(r.Kind)
	}
	if f == (Format{}) {
		f = DefaultFormat()
	}
	if r.Pow2 {
		template = rewritePow2(template)
	}
	return substitute(template, r.placeholderValues(f))
}

// modNGPattern matches a modulus whose right operand is the table size
// placeholder, in either spelling.
var modNGPattern = regexp.MustCompile(`%\s*\$(?:NG\b|\{NG\})`)

func rewritePow2(template string) string {
	return modNGPattern.ReplaceAllString(template, "& $$NGMASK")
}

// substitute expands $NAME, ${NAME} and $$ in template. Unknown names are
// ErrUnknownPlaceholder; syntactically broken placeholders and dangling
// dollars are ErrBadTemplate. Both are reported with the template line.
func substitute(template string, values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template) * 2)
	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(template) {
			return "", fmt.Errorf("%w: dangling $ on line %d",
				chmerrors.ErrBadTemplate, lineOf(template, i))
		}
		switch next := template[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated ${ on line %d",
					chmerrors.ErrBadTemplate, lineOf(template, i))
			}
			name := template[i+2 : i+2+end]
			if !validPlaceholderName(name) {
				return "", fmt.Errorf("%w: invalid placeholder ${%s} on line %d",
					chmerrors.ErrBadTemplate, name, lineOf(template, i))
			}
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: $%s on line %d",
					chmerrors.ErrUnknownPlaceholder, name, lineOf(template, i))
			}
			b.WriteString(v)
			i += 2 + end + 1
		case isPlaceholderStart(next):
			j := i + 1
			for j < len(template) && isPlaceholderByte(template[j]) {
				j++
			}
			name := template[i+1 : j]
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: $%s on line %d",
					chmerrors.ErrUnknownPlaceholder, name, lineOf(template, i))
			}
			b.WriteString(v)
			i = j
		default:
			return "", fmt.Errorf("%w: stray $ on line %d",
				chmerrors.ErrBadTemplate, lineOf(template, i))
		}
	}
	return b.String(), nil
}

func isPlaceholderStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isPlaceholderByte(c byte) bool {
	return isPlaceholderStart(c) || ('0' <= c && c <= '9')
}

func validPlaceholderName(name string) bool {
	if name == "" || !isPlaceholderStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isPlaceholderByte(name[i]) {
			return false
		}
	}
	return true
}

func lineOf(s string, offset int) int {
	return strings.Count(s[:offset], "\n") + 1
}

// builtinTemplate assembles the builtin Go template for kind. The salt
// declarations and hash function differ per kind; the table, the lookup and
// the self test are shared. The emitted program exits non-zero if any key
// fails to map to its own position, which is what RunCode checks.
func builtinTemplate(kind HashKind) string {
	if kind == HashIntSalt {
		return builtinHeader + intSaltSection + builtinBody
	}
	return builtinHeader + strSaltSection + builtinBody
}

const builtinHeader = `// Code generated by chmgen. DO NOT EDIT.

package main

import (
	"fmt"
	"os"
)

// G is the vertex value table of the generated hash function.
var G = []uint32{$G}
`

const strSaltSection = `
// S1 and S2 salt the two hash functions.
const (
	S1 = "$S1"
	S2 = "$S2"
)

func hashf(key, salt string) uint32 {
	sum := uint64(0)
	for i := 0; i < len(key); i++ {
		sum = (sum + uint64(salt[i%$NS])*uint64(key[i])) % $NG
	}
	return uint32(sum)
}
`

const intSaltSection = `
// S1 and S2 salt the two hash functions.
var (
	S1 = []uint32{$S1}
	S2 = []uint32{$S2}
)

func hashf(key string, salt []uint32) uint32 {
	sum := uint64(0)
	for i := 0; i < len(key); i++ {
		sum = (sum + uint64(salt[i%$NS])*uint64(key[i])) % $NG
	}
	return uint32(sum)
}
`

const builtinBody = `
// PerfectHash maps a key from the generated set to its index in that set.
// Any other key maps to an arbitrary bucket in [0, $NG).
func PerfectHash(key string) int {
	return int((G[hashf(key, S1)] + G[hashf(key, S2)]) % $NG)
}

// K is the original key list, used by the self test below.
var K = []string{$K}

func main() {
	if len(S1) != $NS || len(S2) != $NS {
		fmt.Fprintln(os.Stderr, "chmgen self test: salt length mismatch")
		os.Exit(1)
	}
	if len(K) != $NK {
		fmt.Fprintf(os.Stderr, "chmgen self test: have %d keys, want $NK\n", len(K))
		os.Exit(1)
	}
	for i, key := range K {
		if got := PerfectHash(key); got != i {
			fmt.Fprintf(os.Stderr, "chmgen self test: key %q maps to %d, want %d\n", key, got, i)
			os.Exit(1)
		}
	}
}
`
