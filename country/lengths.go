package country

const (
	AD Code = "AD"
	AE Code = "AE"
	AL Code = "AL"
	AT Code = "AT"
	AZ Code = "AZ"
	BA Code = "BA"
	BE Code = "BE"
	BG Code = "BG"
	BH Code = "BH"
	BR Code = "BR"
	CH Code = "CH"
	CR Code = "CR"
	CY Code = "CY"
	CZ Code = "CZ"
	DE Code = "DE"
	DK Code = "DK"
	DO Code = "DO"
	EE Code = "EE"
	ES Code = "ES"
	FI Code = "FI"
	FR Code = "FR"
	GB Code = "GB"
	GE Code = "GE"
	GI Code = "GI"
	GL Code = "GL"
	GR Code = "GR"
	GT Code = "GT"
	HR Code = "HR"
	HU Code = "HU"
	IE Code = "IE"
	IL Code = "IL"
	IS Code = "IS"
	IT Code = "IT"
	KW Code = "KW"
	KZ Code = "KZ"
	LB Code = "LB"
	LI Code = "LI"
	LT Code = "LT"
	LU Code = "LU"
	LV Code = "LV"
	MC Code = "MC"
	MD Code = "MD"
	ME Code = "ME"
	MK Code = "MK"
	MR Code = "MR"
	MT Code = "MT"
	MU Code = "MU"
	NL Code = "NL"
	NO Code = "NO"
	PK Code = "PK"
	PL Code = "PL"
	PS Code = "PS"
	PT Code = "PT"
	RO Code = "RO"
	RS Code = "RS"
	SA Code = "SA"
	SE Code = "SE"
	SI Code = "SI"
	SK Code = "SK"
	SM Code = "SM"
	TN Code = "TN"
	TR Code = "TR"
	VG Code = "VG"
)

// ibanLengths is read-only after init; concurrent lookups need no locking.
var ibanLengths = map[Code]int{
	AL: 28, AD: 24, AT: 20, AZ: 28, BH: 22, BE: 16, BA: 20, BR: 29,
	BG: 22, CR: 22, HR: 21, CY: 28, CZ: 24, DK: 18, DO: 28, EE: 20,
	FI: 18, FR: 27, GE: 22, DE: 22, GI: 23, GR: 27, GL: 18, GT: 28,
	HU: 28, IS: 26, IE: 22, IL: 23, IT: 27, KZ: 20, KW: 30, LV: 21,
	LB: 28, LI: 21, LT: 20, LU: 20, MK: 19, MT: 31, MR: 27, MU: 30,
	MC: 27, MD: 24, ME: 22, NL: 18, NO: 15, PK: 24, PS: 29, PL: 28,
	PT: 25, RO: 24, SM: 27, SA: 24, RS: 22, SK: 24, SI: 19, ES: 24,
	SE: 24, CH: 21, TN: 24, TR: 26, AE: 23, GB: 22, VG: 24,
}
