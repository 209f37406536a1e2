// Package assets supplies the stylesheets and the index script that the
// page builders inline into every generated document.
//
// Assets are addressed by kind and bare name: the style "warm" is
// styles/warm.css, the script "index" is scripts/index.js. The built-in set
// is embedded in the binary. A user directory with the same layout can
// override single files; AssetResolver consults it first and falls back to
// the built-in file when the directory has no such asset:
//
//	{basePath}/
//	├── styles/   index.css, form.css, warm.css, plain.css, or new styles
//	└── scripts/  index.js
//
// Names are restricted to lowercase letters, digits, dashes and
// underscores, and directory reads go through os.Root, so an override
// directory cannot reach files outside itself.
package assets
