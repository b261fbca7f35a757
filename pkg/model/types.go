package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeRadio    = internalmodel.FieldTypeRadio
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypePhone    = internalmodel.FieldTypePhone
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeFile     = internalmodel.FieldTypeFile
)

type Theme = internalmodel.Theme

const (
	ThemeLight = internalmodel.ThemeLight
	ThemeDark  = internalmodel.ThemeDark
	ThemeAuto  = internalmodel.ThemeAuto
)

type RuleKind = internalmodel.RuleKind

const (
	RuleMinLength = internalmodel.RuleMinLength
	RuleMaxLength = internalmodel.RuleMaxLength
	RulePattern   = internalmodel.RulePattern
	RuleCustom    = internalmodel.RuleCustom
)

type (
	ValidationRule = internalmodel.ValidationRule
	RuleValue      = internalmodel.RuleValue
	Component      = internalmodel.Component
	FormSettings   = internalmodel.FormSettings
	FormState      = internalmodel.FormState
	ComponentPatch = internalmodel.ComponentPatch
	SettingsPatch  = internalmodel.SettingsPatch
	PaletteEntry   = internalmodel.PaletteEntry
)

const (
	DefaultPlaceholder    = internalmodel.DefaultPlaceholder
	DefaultSuccessMessage = internalmodel.DefaultSuccessMessage
)

var (
	StringValue         = internalmodel.StringValue
	NumberValue         = internalmodel.NumberValue
	StringPtr           = internalmodel.StringPtr
	IntPtr              = internalmodel.IntPtr
	DefaultFormSettings = internalmodel.DefaultFormSettings
	NewFormState        = internalmodel.NewFormState
	NewComponent        = internalmodel.NewComponent
	Palette             = internalmodel.Palette
	DefaultLabel        = internalmodel.DefaultLabel
	CloneState          = internalmodel.CloneState
	CloneComponent      = internalmodel.CloneComponent
	CloneComponents     = internalmodel.CloneComponents
	DefaultOptions      = internalmodel.DefaultOptions
	NormalizeRuleKind   = internalmodel.NormalizeRuleKind
)
