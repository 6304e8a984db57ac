package canonical

import (
	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"
)

// NormalizeJSONLD renders a JSON-LD document as canonical (URDNA2015)
// N-Quads. Documents with inline contexts need no loader; remote contexts
// are resolved through the supplied one. Issuer and verifier must configure
// the same loader or their canonical forms diverge.
func NormalizeJSONLD(doc map[string]any, loader ld.DocumentLoader) (string, error) {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Algorithm = "URDNA2015"
	options.Format = "application/n-quads"
	if loader != nil {
		options.DocumentLoader = loader
	}

	norm, err := proc.Normalize(doc, options)
	if err != nil {
		return "", errors.Wrap(err, "normalize json-ld document")
	}

	quads, ok := norm.(string)
	if !ok {
		return "", errors.Errorf("unexpected normalization result type %T", norm)
	}
	return quads, nil
}

// JSONLDSerializer returns a Serialize variant that canonicalizes values
// shaped like JSON-LD documents (objects carrying @context) as URDNA2015
// N-Quads and falls back to Serialize for everything else.
func JSONLDSerializer(loader ld.DocumentLoader) func(any) (string, error) {
	return func(v any) (string, error) {
		if doc, ok := v.(map[string]any); ok {
			if _, hasContext := doc["@context"]; hasContext {
				return NormalizeJSONLD(doc, loader)
			}
		}
		return Serialize(v)
	}
}
