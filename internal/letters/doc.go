// Package letters implements document-letter templating: placeholder
// detection in uploaded word-processor templates, auto-fill of detected
// fields from candidate and process data, and final document generation.
//
// Templates are zip archives of XML parts. Editors routinely split a
// single visible placeholder like {{name}} across adjacent text runs, so
// detection first flattens run text per part and only then scans for
// placeholders.
package letters
