package builder

import (
	"fmt"

	"github.com/joseph-ayodele/sanctions-tracker/internal/common"
	"github.com/joseph-ayodele/sanctions-tracker/internal/entity"
	"github.com/joseph-ayodele/sanctions-tracker/internal/xmltree"
)

// ParseFragment decodes one wrapped entity document. Element lookups use the
// namespace of the first child of the wrapper, so a fragment written without
// a namespace still resolves.
func ParseFragment(f entity.Fragment) (*entity.SourceEntity, error) {
	root, err := xmltree.ParseBytes(f.XML)
	if err != nil {
		return nil, common.NewParseError(fmt.Sprintf("fragment %d", f.Seq), err)
	}
	ns := ""
	if len(root.Children) > 0 {
		ns = root.Children[0].Name.Space
	}

	src := &entity.SourceEntity{Seq: f.Seq}
	if st := root.Find(ns, "subjectType"); st != nil {
		src.SubjectType = &entity.SubjectType{ClassificationCode: st.AttrOr("classificationCode")}
	}
	for _, n := range root.FindAll(ns, "nameAlias") {
		g, hasGender := n.Attr("gender")
		src.NameAliases = append(src.NameAliases, entity.NameAlias{
			WholeName: n.AttrOr("wholeName"),
			Gender:    g,
			HasGender: hasGender,
			Title:     n.AttrOr("title"),
			Function:  n.AttrOr("function"),
		})
	}
	for _, n := range root.FindAll(ns, "citizenship") {
		src.Citizenships = append(src.Citizenships, entity.Citizenship{
			CountryDescription: n.AttrOr("countryDescription"),
		})
	}
	for _, n := range root.FindAll(ns, "address") {
		src.Addresses = append(src.Addresses, entity.Address{
			CountryDescription: n.AttrOr("countryDescription"),
			City:               n.AttrOr("city"),
			Street:             n.AttrOr("street"),
			Region:             n.AttrOr("region"),
			Place:              n.AttrOr("place"),
			ZipCode:            n.AttrOr("zipCode"),
		})
	}
	for _, n := range root.FindAll(ns, "birthdate") {
		src.Birthdates = append(src.Birthdates, entity.Birthdate{
			Birthdate:     n.AttrOr("birthdate"),
			Year:          n.AttrOr("year"),
			YearRangeFrom: n.AttrOr("yearRangeFrom"),
			YearRangeTo:   n.AttrOr("yearRangeTo"),
			Place:         n.AttrOr("place"),
		})
	}
	for _, n := range root.FindAll(ns, "regulation") {
		src.Regulations = append(src.Regulations, entity.Regulation{NumberTitle: n.AttrOr("numberTitle")})
	}
	for _, n := range root.FindAll(ns, "remark") {
		src.Remarks = append(src.Remarks, n.Text)
	}
	return src, nil
}
