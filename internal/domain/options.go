package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// OptionValue is one allowed choice of a select or radio option. The backend
// sends either a bare string or an object carrying a surcharge.
type OptionValue struct {
	Value string           `json:"value"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Value = s
		v.Price = nil
		return nil
	}
	type plain OptionValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to unmarshal option value: %w", err)
	}
	*v = OptionValue(p)
	return nil
}

// OptionValidation holds the constraints of text and number options
type OptionValidation struct {
	MinLength *int             `json:"minLength,omitempty"`
	MaxLength *int             `json:"maxLength,omitempty"`
	Pattern   string           `json:"pattern,omitempty"`
	Min       *decimal.Decimal `json:"min,omitempty"`
	Max       *decimal.Decimal `json:"max,omitempty"`
}

// ProductOption is one entry of a product's declared option schema
type ProductOption struct {
	OptionName   string            `json:"optionName"`
	OptionType   OptionType        `json:"optionType"`
	Required     bool              `json:"required"`
	OptionValues []OptionValue     `json:"options,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Validation   *OptionValidation `json:"validation,omitempty"`
}

// Label is the localized display name of the option
func (o ProductOption) Label() string {
	return OptionLabel(o.OptionName)
}

// Kind resolves the option's variant
func (o ProductOption) Kind() OptionKind {
	return KindFor(o.OptionType)
}

// Validate checks value against the option's kind rules. Blank values pass;
// required-ness is checked separately.
func (o ProductOption) Validate(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return o.Kind().Validate(o, value)
}

// Allows reports whether value is one of the declared choices
func (o ProductOption) Allows(value string) bool {
	for _, v := range o.OptionValues {
		if v.Value == value {
			return true
		}
	}
	return false
}

// PriceOf returns the surcharge of a choice, zero if it has none
func (o ProductOption) PriceOf(value string) decimal.Decimal {
	for _, v := range o.OptionValues {
		if v.Value == value && v.Price != nil {
			return *v.Price
		}
	}
	return decimal.Zero
}

var optionLabels = map[string]string{
	"size":     "المقاس",
	"color":    "اللون",
	"material": "الخامة",
	"style":    "الموديل",
	"length":   "الطول",
	"width":    "العرض",
	"weight":   "الوزن",
	"name":     "الاسم",
	"text":     "النص",
	"quantity": "الكمية",
	"notes":    "ملاحظات",
	"design":   "التصميم",
}

// OptionLabel maps an option name to its Arabic label. Unknown names pass
// through unchanged.
func OptionLabel(name string) string {
	if label, ok := optionLabels[name]; ok {
		return label
	}
	return name
}

// Choice is a rendered select or radio entry
type Choice struct {
	Value    string           `json:"value"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Selected bool             `json:"selected"`
}

// Field describes how the option editor renders one option
type Field struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        OptionType       `json:"type"`
	Required    bool             `json:"required"`
	Value       string           `json:"value"`
	Choices     []Choice         `json:"choices,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	MinLength   *int             `json:"minLength,omitempty"`
	MaxLength   *int             `json:"maxLength,omitempty"`
	Pattern     string           `json:"pattern,omitempty"`
	Min         *decimal.Decimal `json:"min,omitempty"`
	Max         *decimal.Decimal `json:"max,omitempty"`
}

// OptionKind is the closed set of option variants. Each one validates a
// value and describes its editor field.
type OptionKind interface {
	Type() OptionType
	Validate(opt ProductOption, value string) error
	Field(opt ProductOption, value string) Field
}

var kinds = map[OptionType]OptionKind{
	OptionTypeSelect: choiceKind{typ: OptionTypeSelect},
	OptionTypeRadio:  choiceKind{typ: OptionTypeRadio},
	OptionTypeText:   textKind{},
	OptionTypeNumber: numberKind{},
}

// KindFor returns the variant for t. Unknown types behave as text.
func KindFor(t OptionType) OptionKind {
	if k, ok := kinds[t]; ok {
		return k
	}
	return textKind{}
}

func baseField(opt ProductOption, typ OptionType, value string) Field {
	return Field{
		Name:        opt.OptionName,
		Label:       opt.Label(),
		Type:        typ,
		Required:    opt.Required,
		Value:       value,
		Placeholder: opt.Placeholder,
	}
}

type choiceKind struct {
	typ OptionType
}

func (k choiceKind) Type() OptionType { return k.typ }

func (k choiceKind) Validate(opt ProductOption, value string) error {
	if len(opt.OptionValues) == 0 || opt.Allows(value) {
		return nil
	}
	return fmt.Errorf("القيمة %q غير متاحة", value)
}

func (k choiceKind) Field(opt ProductOption, value string) Field {
	f := baseField(opt, k.typ, value)
	f.Choices = make([]Choice, len(opt.OptionValues))
	for i, v := range opt.OptionValues {
		f.Choices[i] = Choice{Value: v.Value, Price: v.Price, Selected: v.Value == value}
	}
	return f
}

type textKind struct{}

func (textKind) Type() OptionType { return OptionTypeText }

func (textKind) Validate(opt ProductOption, value string) error {
	v := opt.Validation
	if v == nil {
		return nil
	}
	n := utf8.RuneCountInString(value)
	if v.MinLength != nil && n < *v.MinLength {
		return fmt.Errorf("يجب ألا يقل عن %d حرفاً", *v.MinLength)
	}
	if v.MaxLength != nil && n > *v.MaxLength {
		return fmt.Errorf("يجب ألا يزيد عن %d حرفاً", *v.MaxLength)
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			// patterns that do not compile are ignored
			return nil
		}
		if !re.MatchString(value) {
			return errors.New("الصيغة غير صحيحة")
		}
	}
	return nil
}

func (textKind) Field(opt ProductOption, value string) Field {
	f := baseField(opt, OptionTypeText, value)
	if v := opt.Validation; v != nil {
		f.MinLength = v.MinLength
		f.MaxLength = v.MaxLength
		f.Pattern = v.Pattern
	}
	return f
}

type numberKind struct{}

func (numberKind) Type() OptionType { return OptionTypeNumber }

func (numberKind) Validate(opt ProductOption, value string) error {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return errors.New("يجب أن تكون القيمة رقماً")
	}
	if v := opt.Validation; v != nil {
		if v.Min != nil && n.LessThan(*v.Min) {
			return fmt.Errorf("يجب ألا تقل القيمة عن %s", v.Min.String())
		}
		if v.Max != nil && n.GreaterThan(*v.Max) {
			return fmt.Errorf("يجب ألا تزيد القيمة عن %s", v.Max.String())
		}
	}
	return nil
}

func (numberKind) Field(opt ProductOption, value string) Field {
	f := baseField(opt, OptionTypeNumber, value)
	if v := opt.Validation; v != nil {
		f.Min = v.Min
		f.Max = v.Max
	}
	return f
}

const DefaultSizeGuide = "/images/size-guide/default.png"

var sizeGuides = map[string]string{
	"shirt":   "/images/size-guide/shirt.png",
	"tshirt":  "/images/size-guide/tshirt.png",
	"pants":   "/images/size-guide/pants.png",
	"dress":   "/images/size-guide/dress.png",
	"abaya":   "/images/size-guide/abaya.png",
	"shoes":   "/images/size-guide/shoes.png",
	"uniform": "/images/size-guide/uniform.png",
}

// SizeGuide picks the size-guide image: the product override, then the image
// registered for its type, then the default.
func (p ProductSnapshot) SizeGuide() string {
	if p.SizeGuideImage != "" {
		return p.SizeGuideImage
	}
	if img, ok := sizeGuides[strings.ToLower(p.ProductType)]; ok {
		return img
	}
	return DefaultSizeGuide
}
