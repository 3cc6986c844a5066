package defs

import "time"

type DatumType string

const (
	CbgType              DatumType = "cbg"
	SmbgType             DatumType = "smbg"
	BasalType            DatumType = "basal"
	BolusType            DatumType = "bolus"
	DeviceEventType      DatumType = "deviceEvent"
	FoodType             DatumType = "food"
	MessageType          DatumType = "message"
	PhysicalActivityType DatumType = "physicalActivity"
	PumpSettingsType     DatumType = "pumpSettings"
	UploadType           DatumType = "upload"
	WizardType           DatumType = "wizard"
)

var datumTypes = map[DatumType]struct{}{
	CbgType:              {},
	SmbgType:             {},
	BasalType:            {},
	BolusType:            {},
	DeviceEventType:      {},
	FoodType:             {},
	MessageType:          {},
	PhysicalActivityType: {},
	PumpSettingsType:     {},
	UploadType:           {},
	WizardType:           {},
}

// Datum is implemented by every medical event record. Consumers switch over
// the concrete types rather than dispatching on methods.
type Datum interface {
	GetBase() BaseDatum
	isDatum()
}

type BaseTime struct {
	Timezone        string `json:"timezone" bson:"timezone"`
	NormalTime      string `json:"normalTime" bson:"normalTime"`
	Epoch           int64  `json:"epoch" bson:"epoch"`
	DisplayOffset   int    `json:"displayOffset" bson:"displayOffset"`
	GuessedTimezone bool   `json:"guessedTimezone" bson:"guessedTimezone"`
}

type BaseDatum struct {
	ID       string    `json:"id" bson:"id"`
	Type     DatumType `json:"type" bson:"type"`
	Source   string    `json:"source" bson:"source"`
	BaseTime `bson:",inline"`
}

func (b BaseDatum) GetBase() BaseDatum {
	return b
}

func (b BaseDatum) GetEpoch() int64 {
	return b.Epoch
}

func (b BaseDatum) GetTimezone() string {
	return b.Timezone
}

func (BaseDatum) isDatum() {}

type DurationValue struct {
	Units string  `json:"units" bson:"units"`
	Value float64 `json:"value" bson:"value"`
}

// Duration is mixed into interval based records. EpochEnd is always
// Epoch plus the length in milliseconds.
type Duration struct {
	Length    DurationValue `json:"duration" bson:"duration"`
	NormalEnd string        `json:"normalEnd" bson:"normalEnd"`
	EpochEnd  int64         `json:"epochEnd" bson:"epochEnd"`
}

// Milliseconds converts the duration length to milliseconds. Unknown units
// are read as milliseconds.
func (d Duration) Milliseconds() int64 {
	return int64(d.Length.Value * float64(durationUnit(d.Length.Units)/time.Millisecond))
}

func durationUnit(units string) time.Duration {
	switch units {
	case "hours":
		return time.Hour
	case "minutes":
		return time.Minute
	case "seconds":
		return time.Second
	default:
		return time.Millisecond
	}
}

type Bg struct {
	Units     BgUnit  `json:"units" bson:"units"`
	Value     float64 `json:"value" bson:"value"`
	LocalDate string  `json:"localDate" bson:"localDate"`
	MsPer24   int64   `json:"msPer24" bson:"msPer24"`
}

type Cbg struct {
	BaseDatum  `bson:",inline"`
	Bg         `bson:",inline"`
	DeviceName string `json:"deviceName" bson:"deviceName"`
}

type Smbg struct {
	BaseDatum `bson:",inline"`
	Bg        `bson:",inline"`
}

type DeliveryType string

const (
	AutomatedDelivery DeliveryType = "automated"
	ScheduledDelivery DeliveryType = "scheduled"
	TempDelivery      DeliveryType = "temp"
	SuspendDelivery   DeliveryType = "suspend"
)

type Basal struct {
	BaseDatum    `bson:",inline"`
	Duration     `bson:",inline"`
	DeliveryType DeliveryType `json:"deliveryType" bson:"deliveryType"`
	// Rate is in units per hour.
	Rate float64 `json:"rate" bson:"rate"`
}

type BolusSubType string

const (
	NormalBolus   BolusSubType = "normal"
	BiphasicBolus BolusSubType = "biphasic"
	PenBolus      BolusSubType = "pen"
)

type Prescriptor string

const (
	AutoPrescriptor   Prescriptor = "auto"
	ManualPrescriptor Prescriptor = "manual"
	HybridPrescriptor Prescriptor = "hybrid"
)

type Bolus struct {
	BaseDatum      `bson:",inline"`
	SubType        BolusSubType `json:"subType" bson:"subType"`
	Prescriptor    Prescriptor  `json:"prescriptor" bson:"prescriptor"`
	Normal         float64      `json:"normal" bson:"normal"`
	ExpectedNormal float64      `json:"expectedNormal" bson:"expectedNormal"`
}

type MealSubType string

const (
	DeclaredMeal MealSubType = "meal"
	RescueCarbs  MealSubType = "rescuecarbs"
)

type Carbohydrate struct {
	Net   float64 `json:"net" bson:"net"`
	Units string  `json:"units" bson:"units"`
}

type Nutrition struct {
	Carbohydrate Carbohydrate `json:"carbohydrate" bson:"carbohydrate"`
}

type Meal struct {
	BaseDatum           `bson:",inline"`
	SubType             MealSubType `json:"subType" bson:"subType"`
	Nutrition           Nutrition   `json:"nutrition" bson:"nutrition"`
	PrescribedNutrition *Nutrition  `json:"prescribedNutrition,omitempty" bson:"prescribedNutrition,omitempty"`
	Prescriptor         Prescriptor `json:"prescriptor" bson:"prescriptor"`
}

// Modified reports whether the user overrode the recommended amount.
func (m Meal) Modified() bool {
	return m.Prescriptor == HybridPrescriptor
}

type Wizard struct {
	BaseDatum `bson:",inline"`
	BolusID   string   `json:"bolusId" bson:"bolusId"`
	BolusIDs  []string `json:"bolusIds" bson:"bolusIds"`
	InputTime string   `json:"inputTime" bson:"inputTime"`
	CarbInput float64  `json:"carbInput" bson:"carbInput"`
	Units     BgUnit   `json:"units" bson:"units"`
}

type DeviceEventSubType string

const (
	ConfidentialEvent    DeviceEventSubType = "confidential"
	WarmupEvent          DeviceEventSubType = "warmup"
	ZenEvent             DeviceEventSubType = "zen"
	DeviceParameterEvent DeviceEventSubType = "deviceParameter"
	ReservoirChangeEvent DeviceEventSubType = "reservoirChange"
)

type DeviceEvent struct {
	BaseDatum `bson:",inline"`
	Duration  `bson:",inline"`
	SubType   DeviceEventSubType `json:"subType" bson:"subType"`
}

type Parameter struct {
	ChangeType    string `json:"changeType" bson:"changeType"`
	Name          string `json:"name" bson:"name"`
	Value         string `json:"value" bson:"value"`
	Unit          string `json:"unit" bson:"unit"`
	Level         int    `json:"level" bson:"level"`
	EffectiveDate string `json:"effectiveDate" bson:"effectiveDate"`
}

type PumpSettingsPayload struct {
	Parameters []Parameter `json:"parameters" bson:"parameters"`
}

type PumpSettings struct {
	BaseDatum `bson:",inline"`
	Payload   PumpSettingsPayload `json:"payload" bson:"payload"`
}

// Other holds the record types the statistics never read (messages,
// physical activity, uploads).
type Other struct {
	BaseDatum `bson:",inline"`
}

// DateFilter is the half open window [Start, End) in epoch milliseconds.
// An empty WeekDays keeps every weekday the window covers.
type DateFilter struct {
	Start    int64          `json:"start"`
	End      int64          `json:"end"`
	WeekDays []time.Weekday `json:"weekDays,omitempty"`
}

func (b Bg) GetValue() float64 {
	return b.Value
}

func (b Bg) GetUnits() BgUnit {
	return b.Units
}

func (b Bg) GetLocalDate() string {
	return b.LocalDate
}
