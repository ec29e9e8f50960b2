package testutil

// SampleBib is a small bibliography with fields out of order, an extra
// field and two entry types.
const SampleBib = `@article{key1, year={2020}, title={A Study}, author={Smith, J.}}

@book{knuth84, publisher={Addison-Wesley}, title={The TeXbook}, author={Knuth, D. E.}}
`

// SampleBibFormatted is SampleBib in canonical layout with default options.
const SampleBibFormatted = "@Article{key1,\n" +
	"  author      = {Smith, J.},\n" +
	"  title       = {A Study},\n" +
	"  year        = {2020},\n" +
	"}\n" +
	"\n" +
	"@Book{knuth84,\n" +
	"  author      = {Knuth, D. E.},\n" +
	"  title       = {The TeXbook},\n" +
	"  publisher   = {Addison-Wesley},\n" +
	"}\n" +
	"\n"
