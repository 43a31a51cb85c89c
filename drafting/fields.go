// Package drafting renders contract documents from templates and compares
// contract revisions to produce annex change lists.
// Every operation is a pure function of its inputs: no I/O, no shared state.
package drafting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Field keys of the closed placeholder vocabulary.
const (
	KeyCiudadFirma               = "ciudadFirma"
	KeyFechaContrato             = "fechaContrato"
	KeyFechaIngresoTrabajador    = "fechaIngresoTrabajador"
	KeyNombreEmpresa             = "nombreEmpresa"
	KeyRutEmpresa                = "rutEmpresa"
	KeyRepresentanteLegal        = "representanteLegal"
	KeyRutRepresentante          = "rutRepresentante"
	KeyDomicilioRepresentante    = "domicilioRepresentante"
	KeyDomicilioEmpresa          = "domicilioEmpresa"
	KeyNombreTrabajador          = "nombreTrabajador"
	KeyNacionalidadTrabajador    = "nacionalidadTrabajador"
	KeyRutTrabajador             = "rutTrabajador"
	KeyEstadoCivilTrabajador     = "estadoCivilTrabajador"
	KeyFechaNacimientoTrabajador = "fechaNacimientoTrabajador"
	KeyDomicilioTrabajador       = "domicilioTrabajador"
	KeyCargoTrabajador           = "cargoTrabajador"
	KeyLugarTrabajo              = "lugarTrabajo"
	KeySueldo                    = "sueldo"
	KeySueldoEnPalabras          = "sueldoEnPalabras"
	KeyGratificacionLegal        = "gratificacionLegal"
	KeyAsignaciones              = "asignaciones"
	KeyJornada                   = "jornada"
	KeyDescripcionJornada        = "descripcionJornada"
)

// Kind determines how a field value is formatted before substitution.
type Kind string

const (
	KindText     Kind = "text"
	KindUpper    Kind = "upper"
	KindLongDate Kind = "long_date"
	KindDate     Kind = "date"
	KindAmount   Kind = "amount"
	KindWords    Kind = "words"
)

// Field is one entry of the placeholder vocabulary.
// Source names the field a derived entry reads; empty means Key itself.
type Field struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Kind   Kind   `json:"kind"`
	Source string `json:"source,omitempty"`
}

// Token returns the placeholder literal for the field.
func (f Field) Token() string { return Token(f.Key) }

// EditorToken returns the placeholder literal inserted by the template editor.
func (f Field) EditorToken() string { return EditorToken(f.Key) }

func (f Field) source() string {
	if f.Source != "" {
		return f.Source
	}
	return f.Key
}

// Token returns the "{key}" placeholder literal.
func Token(key string) string { return "{" + key + "}" }

// EditorToken returns the "{@key}" placeholder literal.
func EditorToken(key string) string { return "{@" + key + "}" }

// Vocabulary is the closed set of placeholders a template may reference.
var Vocabulary = []Field{
	{Key: KeyCiudadFirma, Label: "Ciudad Firma", Kind: KindUpper},
	{Key: KeyFechaContrato, Label: "Fecha Contrato", Kind: KindLongDate},
	{Key: KeyFechaIngresoTrabajador, Label: "Fecha Ingreso", Kind: KindLongDate},

	{Key: KeyNombreEmpresa, Label: "Nombre Empresa", Kind: KindText},
	{Key: KeyRutEmpresa, Label: "RUT Empresa", Kind: KindText},
	{Key: KeyRepresentanteLegal, Label: "Representante Legal", Kind: KindText},
	{Key: KeyRutRepresentante, Label: "RUT Representante", Kind: KindText},
	{Key: KeyDomicilioRepresentante, Label: "Domicilio Representante", Kind: KindText},
	{Key: KeyDomicilioEmpresa, Label: "Domicilio Empresa", Kind: KindText},

	{Key: KeyNombreTrabajador, Label: "Nombre Trabajador", Kind: KindText},
	{Key: KeyNacionalidadTrabajador, Label: "Nacionalidad", Kind: KindText},
	{Key: KeyRutTrabajador, Label: "RUT Trabajador", Kind: KindText},
	{Key: KeyEstadoCivilTrabajador, Label: "Estado Civil", Kind: KindText},
	{Key: KeyFechaNacimientoTrabajador, Label: "Fecha Nacimiento", Kind: KindDate},
	{Key: KeyDomicilioTrabajador, Label: "Domicilio Trabajador", Kind: KindText},
	{Key: KeyCargoTrabajador, Label: "Cargo", Kind: KindText},
	{Key: KeyLugarTrabajo, Label: "Lugar de Trabajo", Kind: KindText},

	{Key: KeySueldo, Label: "Sueldo (Número)", Kind: KindAmount},
	{Key: KeySueldoEnPalabras, Label: "Sueldo (Palabras)", Kind: KindWords, Source: KeySueldo},
	{Key: KeyGratificacionLegal, Label: "Gratificación Legal", Kind: KindAmount},
	{Key: KeyAsignaciones, Label: "Asignaciones", Kind: KindAmount},

	{Key: KeyJornada, Label: "Jornada (Horas)", Kind: KindText},
	{Key: KeyDescripcionJornada, Label: "Descripción Jornada", Kind: KindText},
}

// AmendableField is a field an annex may change after signature.
// Phrase opens the annex change line.
type AmendableField struct {
	Key     string
	Label   string
	Phrase  string
	Numeric bool
}

// Amendable lists the fields an annex may change. It is declared apart from
// Vocabulary so that adding a placeholder never makes it amendable.
var Amendable = []AmendableField{
	{Key: KeyCargoTrabajador, Label: "Cargo", Phrase: "El Cargo del trabajador se modifica"},
	{Key: KeyLugarTrabajo, Label: "Lugar de Trabajo", Phrase: "El Lugar de Trabajo se modifica"},
	{Key: KeyDomicilioTrabajador, Label: "Domicilio Trabajador", Phrase: "El Domicilio del Trabajador se modifica"},
	{Key: KeySueldo, Label: "Sueldo Base", Phrase: "El Sueldo Base se modifica", Numeric: true},
	{Key: KeyGratificacionLegal, Label: "Gratificación Legal", Phrase: "La Gratificación Legal se modifica", Numeric: true},
	{Key: KeyAsignaciones, Label: "Asignaciones", Phrase: "Las Asignaciones se modifican", Numeric: true},
}

// AmendableKeys returns the keys of Amendable in declaration order.
func AmendableKeys() []string {
	keys := make([]string, len(Amendable))
	for i, f := range Amendable {
		keys[i] = f.Key
	}
	return keys
}

// LookupAmendable returns the amendable entry for key.
func LookupAmendable(key string) (AmendableField, bool) {
	for _, f := range Amendable {
		if f.Key == key {
			return f, true
		}
	}
	return AmendableField{}, false
}

// FieldSet holds contract field values by key. Absent keys read as "".
type FieldSet map[string]string

// Get returns the value for key, or "" when unset.
func (f FieldSet) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Clone returns an independent copy.
func (f FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge returns a copy of f with the listed keys taken from other.
// Keys absent from other are left unchanged.
func (f FieldSet) Merge(other FieldSet, keys []string) FieldSet {
	out := f.Clone()
	for _, k := range keys {
		if v, ok := other[k]; ok {
			out[k] = v
		}
	}
	return out
}

// UnmarshalJSON accepts string, number, and boolean values. Null values
// are dropped so they read as unset.
func (f *FieldSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(FieldSet, len(raw))
	for k, v := range raw {
		s, ok, err := decodeValue(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		if ok {
			out[k] = s
		}
	}

	*f = out
	return nil
}

func decodeValue(v json.RawMessage) (string, bool, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", false, nil
	}

	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", false, fmt.Errorf("unsupported value %s", v)
		}
		return n.String(), true, nil
	}
}
