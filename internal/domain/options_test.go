package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestOptionValue_UnmarshalStringOrObject(t *testing.T) {
	var opt ProductOption
	raw := `{"optionName":"size","optionType":"select","required":true,"options":["S",{"value":"XL","price":15}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &opt))

	require.Len(t, opt.OptionValues, 2)
	assert.Equal(t, "S", opt.OptionValues[0].Value)
	assert.Nil(t, opt.OptionValues[0].Price)
	assert.Equal(t, "XL", opt.OptionValues[1].Value)
	require.NotNil(t, opt.OptionValues[1].Price)
	assert.True(t, opt.OptionValues[1].Price.Equal(decimal.NewFromInt(15)))
	assert.True(t, opt.PriceOf("XL").Equal(decimal.NewFromInt(15)))
	assert.True(t, opt.PriceOf("S").IsZero())
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "المقاس", OptionLabel("size"))
	assert.Equal(t, "اللون", OptionLabel("color"))
	assert.Equal(t, "engraving", OptionLabel("engraving"))
}

func TestKindFor_UnknownFallsBackToText(t *testing.T) {
	assert.Equal(t, OptionTypeText, KindFor("checkbox").Type())
	assert.Equal(t, OptionTypeRadio, KindFor(OptionTypeRadio).Type())
}

func TestChoiceKind_Validate(t *testing.T) {
	opt := ProductOption{
		OptionName:   "size",
		OptionType:   OptionTypeSelect,
		OptionValues: []OptionValue{{Value: "S"}, {Value: "M"}},
	}

	assert.NoError(t, opt.Validate("M"))
	assert.Error(t, opt.Validate("XXL"))
	assert.NoError(t, opt.Validate("  "), "blank values are a required-ness concern")

	open := ProductOption{OptionName: "color", OptionType: OptionTypeRadio}
	assert.NoError(t, open.Validate("anything"))
}

func TestTextKind_Validate(t *testing.T) {
	opt := ProductOption{
		OptionName: "name",
		OptionType: OptionTypeText,
		Validation: &OptionValidation{MinLength: intPtr(2), MaxLength: intPtr(5), Pattern: `^\p{L}+$`},
	}

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"أحمد", false},
		{"ع", true},
		{"محمدعلي", true},
		{"ab1", true},
		{"abc", false},
	}
	for _, tt := range tests {
		err := opt.Validate(tt.value)
		if tt.wantErr {
			assert.Error(t, err, tt.value)
		} else {
			assert.NoError(t, err, tt.value)
		}
	}
}

func TestTextKind_BrokenPatternIgnored(t *testing.T) {
	opt := ProductOption{OptionType: OptionTypeText, Validation: &OptionValidation{Pattern: "(["}}
	assert.NoError(t, opt.Validate("x"))
}

func TestNumberKind_Validate(t *testing.T) {
	opt := ProductOption{
		OptionName: "length",
		OptionType: OptionTypeNumber,
		Validation: &OptionValidation{Min: decPtr("10"), Max: decPtr("200")},
	}

	assert.NoError(t, opt.Validate("120"))
	assert.NoError(t, opt.Validate("10.5"))
	assert.Error(t, opt.Validate("abc"))
	assert.Error(t, opt.Validate("9"))
	assert.Error(t, opt.Validate("201"))
}

func TestField_Choices(t *testing.T) {
	opt := ProductOption{
		OptionName:   "size",
		OptionType:   OptionTypeSelect,
		Required:     true,
		OptionValues: []OptionValue{{Value: "S"}, {Value: "M", Price: decPtr("5")}},
	}

	f := opt.Kind().Field(opt, "M")
	assert.Equal(t, "المقاس", f.Label)
	assert.True(t, f.Required)
	require.Len(t, f.Choices, 2)
	assert.False(t, f.Choices[0].Selected)
	assert.True(t, f.Choices[1].Selected)
}

func TestProductSnapshot_SizeGuide(t *testing.T) {
	assert.Equal(t, "/custom.png", ProductSnapshot{ProductType: "shirt", SizeGuideImage: "/custom.png"}.SizeGuide())
	assert.Equal(t, "/images/size-guide/shirt.png", ProductSnapshot{ProductType: "Shirt"}.SizeGuide())
	assert.Equal(t, DefaultSizeGuide, ProductSnapshot{ProductType: "mug"}.SizeGuide())
}

func TestProductSnapshot_GalleryAndDiscount(t *testing.T) {
	p := ProductSnapshot{
		MainImage:     "/a.jpg",
		Images:        []string{"/a.jpg", "/b.jpg", ""},
		Price:         decimal.NewFromInt(80),
		OriginalPrice: decPtr("100"),
	}
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, p.Gallery())
	assert.True(t, p.Discount().Equal(decimal.NewFromInt(20)))

	p.OriginalPrice = decPtr("50")
	assert.True(t, p.Discount().IsZero())
}

func TestCartItem_Totals(t *testing.T) {
	item := CartItem{
		Quantity:       3,
		OptionsPricing: map[string]decimal.Decimal{"size": decimal.NewFromInt(5), "color": decimal.NewFromInt(2)},
		Product:        ProductSnapshot{Price: decimal.NewFromInt(100), Stock: 4},
	}
	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(300)))
	assert.True(t, item.Surcharge().Equal(decimal.NewFromInt(21)))
	assert.True(t, item.QuantityAllowed(4))
	assert.False(t, item.QuantityAllowed(5))
	assert.False(t, item.QuantityAllowed(0))
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusShipped.IsValid())
	assert.False(t, OrderStatus("lost").IsValid())
	assert.Equal(t, "تم الشحن", OrderStatusShipped.Label())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}
