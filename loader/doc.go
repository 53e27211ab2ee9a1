// Package loader keeps a named set of templates read from a directory.
//
// Every file with a template extension (.tmpl and .txt by default) becomes a
// template named by its slash-separated path relative to the directory,
// without the extension: "mail/welcome.tmpl" is "mail/welcome".
//
//	set, err := loader.New("templates", engine)
//	out, err := set.Render("mail/welcome", user)
//
// Watch reloads the set when files change. A reload that fails to read or
// parse any file keeps the previous set.
package loader
