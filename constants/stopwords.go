package constants

// MajorStopWords truncate a label-anchored major capture at their first occurrence.
var MajorStopWords = map[string]struct{}{
	// institutions
	"universitas": {}, "university": {}, "univ": {}, "institut": {}, "institute": {},
	"politeknik": {}, "polytechnic": {}, "sekolah": {}, "stmik": {}, "stikom": {},
	"akademi": {}, "fakultas": {}, "faculty": {}, "kampus": {}, "binus": {}, "telkom": {},
	"ui": {}, "itb": {}, "ugm": {}, "its": {}, "ipb": {}, "unair": {}, "undip": {},
	// months
	"januari": {}, "februari": {}, "maret": {}, "april": {}, "mei": {}, "juni": {},
	"juli": {}, "agustus": {}, "september": {}, "oktober": {}, "november": {}, "desember": {},
	"january": {}, "february": {}, "march": {}, "may": {}, "june": {}, "july": {},
	"august": {}, "october": {}, "december": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {}, "agu": {}, "aug": {},
	"sep": {}, "okt": {}, "oct": {}, "nov": {}, "des": {}, "dec": {},
	// filler
	"angkatan": {}, "tahun": {}, "semester": {}, "sem": {}, "ipk": {}, "gpa": {},
	"dengan": {}, "di": {}, "pada": {}, "dan": {}, "at": {}, "from": {}, "in": {},
	"class": {}, "batch": {}, "year": {}, "sekarang": {}, "present": {}, "saat": {},
	"ini": {}, "lulus": {}, "graduated": {}, "expected": {}, "with": {},
}
