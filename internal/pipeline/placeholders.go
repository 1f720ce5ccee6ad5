package pipeline

import (
	"errors"
	"fmt"

	"ddp/internal/locale"
	"ddp/internal/table"
)

// Missing is the table shown for an artifact that is not in the archive.
func Missing(l locale.Locale, key string) *table.Table {
	t := table.New(key, "", locale.T(l, locale.KeyNoInformation))
	t.Append(locale.Tf(l, locale.KeyMissingFile, key))
	return t
}

// Failed is the one-row table shown for an artifact whose extractor
// returned an error or panicked.
func Failed(l locale.Locale, key string, cause any) *table.Table {
	t := table.New(key, "", key)
	t.Append(fmt.Sprintf("%s(%s, %s)", locale.T(l, locale.KeyExtractionFailed), key, errorClass(cause)))
	return t
}

// errorClass names the innermost error type, or the panic value's type.
func errorClass(cause any) string {
	err, ok := cause.(error)
	if !ok {
		return fmt.Sprintf("%T", cause)
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
