package classify

import "strconv"

// KindEnum identifies the fake-data generator chosen for a field.
type KindEnum int

const (
	_ KindEnum = iota // zero value is invalid

	KindFirstName
	KindLastName
	KindStreetName
	KindFullName
	KindCountryCode
	KindCountry
	KindZipCode
	KindCity
	KindNumber
	KindPhone
	KindEmail
	KindUserName
	KindDomain
	KindCompany
	KindImage
	KindTitleCode
	KindTitle
	KindWord

	// KindTotal is the number of kinds defined, including the invalid zero value.
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindFirstName:   "KindFirstName",
	KindLastName:    "KindLastName",
	KindStreetName:  "KindStreetName",
	KindFullName:    "KindFullName",
	KindCountryCode: "KindCountryCode",
	KindCountry:     "KindCountry",
	KindZipCode:     "KindZipCode",
	KindCity:        "KindCity",
	KindNumber:      "KindNumber",
	KindPhone:       "KindPhone",
	KindEmail:       "KindEmail",
	KindUserName:    "KindUserName",
	KindDomain:      "KindDomain",
	KindCompany:     "KindCompany",
	KindImage:       "KindImage",
	KindTitleCode:   "KindTitleCode",
	KindTitle:       "KindTitle",
	KindWord:        "KindWord",
}

// String returns the kind name, or KindEnum(n) for undefined values.
func (k KindEnum) String() string {
	if !k.valid() {
		return "KindEnum(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

func (k KindEnum) valid() bool {
	return k > 0 && int(k) < KindTotal
}

// CountryCodeLiteral is the fixed value used for country code fields.
const CountryCodeLiteral = `"CH"`

// TitleCodes is the argument literal passed to the title code generator.
const TitleCodes = `["mr","ms"]`

// Generator returns the faker generator bound to k. Literal generators
// (country code) carry the literal text instead of a path.
func (k KindEnum) Generator() Generator {
	switch k {
	case KindFirstName:
		return Generator{Kind: k, Path: "name.firstName"}
	case KindLastName:
		return Generator{Kind: k, Path: "name.lastName"}
	case KindStreetName:
		return Generator{Kind: k, Path: "address.streetName"}
	case KindFullName:
		return Generator{Kind: k, Path: "name.findName"}
	case KindCountryCode:
		return Generator{Kind: k, Literal: CountryCodeLiteral}
	case KindCountry:
		return Generator{Kind: k, Path: "address.ukCountry"}
	case KindZipCode:
		return Generator{Kind: k, Path: "address.zipCode"}
	case KindCity:
		return Generator{Kind: k, Path: "address.city"}
	case KindNumber:
		return Generator{Kind: k, Path: "random.number"}
	case KindPhone:
		return Generator{Kind: k, Path: "phoneNumber.phoneNumber"}
	case KindEmail:
		return Generator{Kind: k, Path: "internet.email"}
	case KindUserName:
		return Generator{Kind: k, Path: "internet.userName"}
	case KindDomain:
		return Generator{Kind: k, Path: "internet.domainName"}
	case KindCompany:
		return Generator{Kind: k, Path: "company.companyName"}
	case KindImage:
		return Generator{Kind: k, Path: "image.nature"}
	case KindTitleCode:
		return Generator{Kind: k, Path: "random.arrayElement", Args: TitleCodes}
	case KindTitle:
		return Generator{Kind: k, Path: "name.prefix"}
	case KindWord:
		return Generator{Kind: k, Path: "lorem.word"}
	default:
		panic("no generator bound to " + k.String())
	}
}
