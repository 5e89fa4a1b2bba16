/*
Package barcode validates barcode values against a catalog of symbologies.

Each symbology is a Symbology descriptor: allowed lengths, an allowed
character predicate, and an optional checksum Algorithm. Descriptors are
looked up by name through a Registry; Default() holds the built-in set.

	v, err := barcode.New(barcode.Options{Symbology: "upc-a"})
	if err != nil {
		return err
	}
	outcome := v.Validate("065100004327", nil)

The Codabar checksum is mod 16 over every character, start and stop included,
with the check character just before the stop.

Code39ext and Code93ext have no checksum verification,
so their checksum step always passes.
*/
package barcode
