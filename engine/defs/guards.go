package defs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

var ErrInvalidDatum = errors.New("invalid datum")

// IsBaseDatum reports whether raw carries the identity and time fields every
// record shares.
func IsBaseDatum(raw map[string]interface{}) bool {
	if raw == nil {
		return false
	}
	id, ok := raw["id"].(string)
	if !ok || id == "" {
		return false
	}
	t, ok := raw["type"].(string)
	if !ok {
		return false
	}
	if _, ok := datumTypes[DatumType(t)]; !ok {
		return false
	}
	if _, ok := raw["timezone"].(string); !ok {
		return false
	}
	if _, ok := raw["normalTime"].(string); !ok {
		return false
	}
	if _, ok := number(raw["epoch"]); !ok {
		return false
	}
	return true
}

// IsDuration checks the interval fields, including that epochEnd matches
// epoch plus the duration.
func IsDuration(raw map[string]interface{}) bool {
	if raw == nil {
		return false
	}
	dur, ok := asMap(raw["duration"])
	if !ok {
		return false
	}
	units, ok := dur["units"].(string)
	if !ok {
		return false
	}
	value, ok := number(dur["value"])
	if !ok || value < 0 {
		return false
	}
	if _, ok := raw["normalEnd"].(string); !ok {
		return false
	}
	epoch, ok := number(raw["epoch"])
	if !ok {
		return false
	}
	epochEnd, ok := number(raw["epochEnd"])
	if !ok {
		return false
	}
	d := Duration{Length: DurationValue{Units: units, Value: value}}
	return int64(epochEnd) == int64(epoch)+d.Milliseconds()
}

// IsBg checks the glucose reading fields on top of the base ones.
func IsBg(raw map[string]interface{}) bool {
	if !IsBaseDatum(raw) {
		return false
	}
	t := DatumType(raw["type"].(string))
	if t != CbgType && t != SmbgType {
		return false
	}
	units, ok := raw["units"].(string)
	if !ok || !BgUnit(units).Valid() {
		return false
	}
	value, ok := number(raw["value"])
	if !ok || value <= 0 {
		return false
	}
	if _, ok := raw["localDate"].(string); !ok {
		return false
	}
	_, ok = number(raw["msPer24"])
	return ok
}

// Decode validates raw and decodes it into its concrete record type.
func Decode(raw map[string]interface{}) (Datum, error) {
	if !IsBaseDatum(raw) {
		return nil, fmt.Errorf("%w: missing base fields", ErrInvalidDatum)
	}

	var d Datum
	switch DatumType(raw["type"].(string)) {
	case CbgType:
		if !IsBg(raw) {
			return nil, fmt.Errorf("%w: malformed cbg %v", ErrInvalidDatum, raw["id"])
		}
		d = &Cbg{}
	case SmbgType:
		if !IsBg(raw) {
			return nil, fmt.Errorf("%w: malformed smbg %v", ErrInvalidDatum, raw["id"])
		}
		d = &Smbg{}
	case BasalType:
		if !IsDuration(raw) {
			return nil, fmt.Errorf("%w: malformed basal %v", ErrInvalidDatum, raw["id"])
		}
		d = &Basal{}
	case DeviceEventType:
		// Only mode events carry an interval.
		if _, ok := raw["duration"]; ok && !IsDuration(raw) {
			return nil, fmt.Errorf("%w: malformed deviceEvent %v", ErrInvalidDatum, raw["id"])
		}
		d = &DeviceEvent{}
	case BolusType:
		d = &Bolus{}
	case FoodType:
		d = &Meal{}
	case WizardType:
		d = &Wizard{}
	case PumpSettingsType:
		d = &PumpSettings{}
	default:
		d = &Other{}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  d,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatum, err)
	}

	return deref(d), nil
}

// deref hands out values so callers can switch on the plain record types.
func deref(d Datum) Datum {
	switch v := d.(type) {
	case *Cbg:
		return *v
	case *Smbg:
		return *v
	case *Basal:
		return *v
	case *Bolus:
		return *v
	case *Meal:
		return *v
	case *Wizard:
		return *v
	case *DeviceEvent:
		return *v
	case *PumpSettings:
		return *v
	case *Other:
		return *v
	default:
		return d
	}
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asMap accepts named map types such as the ones the mongo driver decodes
// nested documents into.
func asMap(v interface{}) (map[string]interface{}, bool) {
	if m, ok := v.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
