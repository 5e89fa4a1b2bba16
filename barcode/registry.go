package barcode

import (
	"strings"
	"unicode/utf8"

	"github.com/lithictech/go-assay/stringutil"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// ErrUnknownSymbology is returned when a name matches no registered symbology.
var ErrUnknownSymbology = errors.New("unknown barcode symbology")

// DefaultSymbology is used when a validator is not told which symbology to check.
const DefaultSymbology = "Ean13"

// Registry resolves symbology names to descriptors.
type Registry struct {
	byKey map[string]*Symbology
	order []*Symbology
}

// NewRegistry returns a registry holding the given symbologies.
func NewRegistry(symbologies ...*Symbology) *Registry {
	r := &Registry{byKey: make(map[string]*Symbology, len(symbologies)*2)}
	for _, s := range symbologies {
		r.Register(s)
	}
	return r
}

// Register adds s under its name and the given aliases.
// Registering a name twice replaces the earlier descriptor.
func (r *Registry) Register(s *Symbology, aliases ...string) *Registry {
	key := lookupKey(s.Name)
	if _, exists := r.byKey[key]; !exists {
		r.order = append(r.order, s)
	} else {
		for i, existing := range r.order {
			if lookupKey(existing.Name) == key {
				r.order[i] = s
			}
		}
	}
	r.byKey[key] = s
	for _, a := range aliases {
		r.byKey[lookupKey(a)] = s
	}
	return r
}

// Resolve finds a symbology by name or alias.
// Matching ignores case, and ignores dashes, underscores and spaces,
// so "EAN-13", "ean13" and "Ean13" are the same symbology.
func (r *Registry) Resolve(name string) (*Symbology, error) {
	if s, ok := r.byKey[lookupKey(name)]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(ErrUnknownSymbology, "%q", name)
}

// Symbologies returns every registered descriptor in registration order.
func (r *Registry) Symbologies() []*Symbology {
	return append([]*Symbology(nil), r.order...)
}

var separators = strings.NewReplacer("-", "", "_", "", " ", "")

func lookupKey(name string) string {
	// Casers keep state, so each lookup gets its own.
	key := cases.Fold().String(strings.TrimSpace(name))
	return separators.Replace(key)
}

var defaultRegistry = NewRegistry()

func init() {
	for _, s := range builtin() {
		defaultRegistry.Register(s.symbology, s.aliases...)
	}
}

// Default returns the registry of built-in symbologies.
// It is shared; do not Register into it after startup.
func Default() *Registry {
	return defaultRegistry
}

// Resolve finds a built-in symbology by name. See Registry.Resolve.
func Resolve(name string) (*Symbology, error) {
	return defaultRegistry.Resolve(name)
}

// MustResolve is Resolve that panics on error.
func MustResolve(name string) *Symbology {
	s, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return s
}

type entry struct {
	symbology *Symbology
	aliases   []string
}

func builtin() []entry {
	numeric := onlyRunesOf(digits)
	gtinFixed := func(name string, n int, aliases ...string) entry {
		return entry{&Symbology{Name: name, Lengths: Exact(n), Characters: numeric, Checksum: gtin, ChecksumByDefault: true}, aliases}
	}
	return []entry{
		{&Symbology{Name: "Codabar", Lengths: Unbounded(), Characters: codabarCharacters, Checksum: codabar}, []string{"nw7", "code2of7"}},
		{&Symbology{Name: "Code128", Lengths: AtLeast(1), Characters: code128Characters, Checksum: code128, ChecksumByDefault: true}, nil},
		{&Symbology{Name: "Code25", Lengths: Unbounded(), Characters: numeric, Checksum: code25}, []string{"code2of5", "industrial2of5"}},
		{&Symbology{Name: "Code25interleaved", Lengths: Even(), Characters: numeric, Checksum: code25}, []string{"itf", "interleaved2of5"}},
		{&Symbology{Name: "Code39", Lengths: Unbounded(), Characters: onlyRunesOf(code39Chars), Checksum: code39}, []string{"code3of9"}},
		// Full ASCII Code 39 and Code 93 have no checksum verification here.
		{&Symbology{Name: "Code39ext", Lengths: Unbounded(), Characters: stringutil.IsASCII}, []string{"code39extended"}},
		{&Symbology{Name: "Code93", Lengths: Unbounded(), Characters: onlyRunesOf(code39Chars), Checksum: code93}, nil},
		{&Symbology{Name: "Code93ext", Lengths: Unbounded(), Characters: stringutil.IsASCII}, []string{"code93extended"}},
		{&Symbology{Name: "Ean2", Lengths: Exact(2), Characters: numeric}, nil},
		{&Symbology{Name: "Ean5", Lengths: Exact(5), Characters: numeric}, nil},
		{&Symbology{Name: "Ean8", Lengths: OneOf(7, 8), Characters: numeric, Checksum: gtinAt8, ChecksumByDefault: true}, nil},
		gtinFixed("Ean12", 12),
		gtinFixed("Ean13", 13, "isbn13", "jan"),
		gtinFixed("Ean14", 14),
		gtinFixed("Ean18", 18),
		gtinFixed("Gtin12", 12),
		gtinFixed("Gtin13", 13),
		gtinFixed("Gtin14", 14),
		{&Symbology{Name: "Identcode", Lengths: Exact(12), Characters: numeric, Checksum: identcode, ChecksumByDefault: true}, nil},
		{&Symbology{Name: "Intelligentmail", Lengths: OneOf(20, 25, 29, 31), Characters: numeric}, []string{"imb", "uspsimb"}},
		{&Symbology{Name: "Issn", Lengths: OneOf(8, 13), Characters: issnCharacters, Checksum: issn, ChecksumByDefault: true}, nil},
		gtinFixed("Itf14", 14),
		{&Symbology{Name: "Leitcode", Lengths: Exact(14), Characters: numeric, Checksum: identcode, ChecksumByDefault: true}, nil},
		{&Symbology{Name: "Planet", Lengths: OneOf(12, 14), Characters: numeric, Checksum: postnet, ChecksumByDefault: true}, nil},
		{&Symbology{Name: "Postnet", Lengths: OneOf(6, 7, 10, 12), Characters: numeric, Checksum: postnet, ChecksumByDefault: true}, nil},
		{&Symbology{Name: "Royalmail", Lengths: Unbounded(), Characters: royalmailCharacters, Checksum: royalmail, ChecksumByDefault: true}, []string{"rm4scc"}},
		gtinFixed("Sscc", 18),
		gtinFixed("Upca", 12),
		{&Symbology{Name: "Upce", Lengths: OneOf(6, 7, 8), Characters: numeric, Checksum: gtinAt8, ChecksumByDefault: true}, nil},
	}
}

// codabarCharacters requires a matching start/stop pair when the value uses
// start/stop characters at all, and only data characters in between.
func codabarCharacters(value string) bool {
	inner := value
	for _, class := range []string{"ABCD", "TN*E"} {
		if !strings.ContainsAny(value, class) {
			continue
		}
		if len(value) < 2 {
			return false
		}
		if !strings.ContainsRune(class, rune(value[0])) || !strings.ContainsRune(class, rune(value[len(value)-1])) {
			return false
		}
		inner = value[1 : len(value)-1]
		break
	}
	return stringutil.OnlyRunesOf(inner, digits+"-$:/.+")
}

// code128Characters allows ASCII data, and one of the extended check
// characters in the last position.
func code128Characters(value string) bool {
	if r, size := utf8.DecodeLastRuneInString(value); strings.ContainsRune(code128Extended, r) {
		value = value[:len(value)-size]
	}
	return stringutil.IsASCII(value)
}

// issnCharacters allows digits, and an X check character on the 8 digit form.
func issnCharacters(value string) bool {
	if len(value) == 8 && strings.HasSuffix(value, "X") {
		value = value[:7]
	}
	return stringutil.OnlyRunesOf(value, digits)
}

// royalmailCharacters allows an optional surrounding pair of parentheses.
func royalmailCharacters(value string) bool {
	if strings.HasPrefix(value, "(") {
		if !strings.HasSuffix(value, ")") || len(value) < 2 {
			return false
		}
		value = value[1 : len(value)-1]
	}
	return stringutil.OnlyRunesOf(value, alphanumeric)
}
