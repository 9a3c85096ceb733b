package entity

// Fragment is one single-entity XML document cut from the registry export.
// Seq is the 1-based position of the entity in the source document.
type Fragment struct {
	Seq int    `json:"seq"`
	XML []byte `json:"-"`
}

// SourceEntity is the parsed view of a fragment. Attribute values are kept
// verbatim; callers decide what "empty" means for each field.
type SourceEntity struct {
	Seq          int           `json:"seq"`
	SubjectType  *SubjectType  `json:"subject_type,omitempty"`
	NameAliases  []NameAlias   `json:"name_aliases"`
	Citizenships []Citizenship `json:"citizenships"`
	Addresses    []Address     `json:"addresses"`
	Birthdates   []Birthdate   `json:"birthdates"`
	Regulations  []Regulation  `json:"regulations"`
	Remarks      []string      `json:"remarks"`
}

type SubjectType struct {
	ClassificationCode string `json:"classification_code"`
}

type NameAlias struct {
	WholeName string `json:"whole_name"`
	Gender    string `json:"gender"`
	HasGender bool   `json:"has_gender"`
	Title     string `json:"title"`
	Function  string `json:"function"`
}

type Citizenship struct {
	CountryDescription string `json:"country_description"`
}

type Address struct {
	CountryDescription string `json:"country_description"`
	City               string `json:"city"`
	Street             string `json:"street"`
	Region             string `json:"region"`
	Place              string `json:"place"`
	ZipCode            string `json:"zip_code"`
}

type Birthdate struct {
	Birthdate     string `json:"birthdate"`
	Year          string `json:"year"`
	YearRangeFrom string `json:"year_range_from"`
	YearRangeTo   string `json:"year_range_to"`
	Place         string `json:"place"`
}

type Regulation struct {
	NumberTitle string `json:"number_title"`
}
