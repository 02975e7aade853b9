// Package config loads and saves mploader settings.
//
// Settings live in a single JSON file. A missing file yields defaults,
// so the CLI works without any setup:
//
//	settings, err := config.Load("~/.config/mploader/settings.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.Workers = 5
//	settings.Save(path)
//
// Match weights (title/duration/artist) are deliberately part of the
// settings file: selection quality depends on the input material, and
// pinning the weights in configuration keeps runs reproducible.
package config
