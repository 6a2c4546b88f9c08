package extract

// Vocabulary tables used for feature extraction. Matching is
// case-insensitive substring occurrence counting, deliberately not
// word-bounded: "roadside" counts as a "road" hit and a repeated term
// counts once per occurrence. Coarse, but it keeps scoring cheap and the
// outcomes predictable; whole-word matching would change scores.
var uncertaintyTerms = []string{
	"maybe",
	"not sure",
	"unsure",
	"idk",
	"rumour",
	"unconfirmed",
	"apparently",
	"heard",
	"someone said",
	"looks like",
	"i think",
	"might",
}

var concreteDetailTerms = []string{
	"lane",
	"km",
	"exit",
	"towards",
	"junction",
	"bridge",
	"singapore",
	"expressway",
	"avenue",
	"road",
	"street",
}

var mediaHintTerms = []string{
	"see photo",
	"attached",
	"image",
	"video",
	"screenshot",
}

// severityOrder ranks severity labels; unrecognised labels rank as medium.
var severityOrder = map[string]int{
	"low":      0,
	"medium":   1,
	"moderate": 1,
	"high":     2,
	"critical": 3,
}
