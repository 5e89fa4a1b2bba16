/*
Package validator validates struct fields from `validate` tags,
for checking API request bodies and configuration.
It is built on https://github.com/go-validator/validator,
though it does not expose it. The built-in validators of that package
(len, min, max, nonzero, regexp) are available alongside these:

	barcode
		For string types, validate that the string is a valid barcode
		of the given symbology. Add "|checksum" or "|nochecksum" to
		override whether the symbology's checksum is verified.
		The error text is the barcode validator's message.
		If "|opt" is the trailing argument, an empty string is accepted.
		(Usage: barcode=ean13 barcode=code39|checksum barcode=upca|opt)

	symbology
		For string types, validate that the string names a known
		barcode symbology. Names match case-insensitively and ignore
		dashes, so "EAN-13" is valid.
		If "opt" is specified, an empty string is accepted.
		(Usage: symbology symbology=opt)

	uuid
		For string types, validate that the string is a UUID in its
		canonical hyphenated form.
		If "opt" is specified, an empty string is accepted.
		(Usage: uuid uuid=opt)

	enum
		For string types, validate that the string is one of the specified choices.
		Choices should be pipe-delimited. Matching is case-insensitive.
		If "|opt" is the trailing argument, an empty string is valid.
		For string slices, validate that each member is one of the choices;
		"|opt" cannot be used for string slices.
		(Usage: enum=text|json enum=text|json|opt)

Pointers

Nil pointers are considered valid, because pointer fields generally
specify a value is optional. Use "nonzero" if a nil pointer is not acceptable:

    type req struct {
        Code *string `json:"code" validate:"barcode=ean13,nonzero"`
    }

*/
package validator
