package gdml

import "encoding/xml"

// XML element shapes of the geometry-description format. Field order
// within each struct matches the child order the schema expects, so
// the encoder emits valid documents without post-processing.

type document struct {
	XMLName   xml.Name       `xml:"gdml"`
	XSI       string         `xml:"xmlns:xsi,attr"`
	SchemaLoc string         `xml:"xsi:noNamespaceSchemaLocation,attr"`
	Define    defineBlock    `xml:"define"`
	Materials materialsBlock `xml:"materials"`
	Solids    solidsBlock    `xml:"solids"`
	Structure structureBlock `xml:"structure"`
	UserInfo  *userInfo      `xml:"userinfo"`
	Setup     setupBlock     `xml:"setup"`
}

type defineBlock struct {
	Matrices []matrix `xml:"matrix"`
}

// matrix is a flattened property table: coldim 2 with alternating
// energy and value columns.
type matrix struct {
	Name   string `xml:"name,attr"`
	ColDim int    `xml:"coldim,attr"`
	Values string `xml:"values,attr"`
}

type materialsBlock struct {
	Elements  []elementDef  `xml:"element"`
	Materials []materialDef `xml:"material"`
}

type elementDef struct {
	Name    string `xml:"name,attr"`
	Formula string `xml:"formula,attr"`
	Z       int    `xml:"Z,attr"`
	Atom    scalar `xml:"atom"`
}

type scalar struct {
	Value float64 `xml:"value,attr"`
	Unit  string  `xml:"unit,attr,omitempty"`
}

type materialDef struct {
	Name        string        `xml:"name,attr"`
	State       string        `xml:"state,attr"`
	Properties  []propertyRef `xml:"property"`
	Temperature *scalar       `xml:"T"`
	Pressure    *scalar       `xml:"P"`
	Density     scalar        `xml:"D"`
	Composites  []composite   `xml:"composite"`
	Fractions   []fraction    `xml:"fraction"`
}

type composite struct {
	N   int    `xml:"n,attr"`
	Ref string `xml:"ref,attr"`
}

type fraction struct {
	N   float64 `xml:"n,attr"`
	Ref string  `xml:"ref,attr"`
}

type propertyRef struct {
	Name string `xml:"name,attr"`
	Ref  string `xml:"ref,attr"`
}

// solidsBlock holds heterogeneous solid elements. Each item carries
// its own XMLName so the encoder picks the element name from the
// concrete type.
type solidsBlock struct {
	Items []any
}

type boxSolid struct {
	XMLName xml.Name `xml:"box"`
	Name    string   `xml:"name,attr"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	Z       float64  `xml:"z,attr"`
	LUnit   string   `xml:"lunit,attr"`
}

type tubeSolid struct {
	XMLName  xml.Name `xml:"tube"`
	Name     string   `xml:"name,attr"`
	Rmin     float64  `xml:"rmin,attr"`
	Rmax     float64  `xml:"rmax,attr"`
	Z        float64  `xml:"z,attr"`
	StartPhi float64  `xml:"startphi,attr"`
	DeltaPhi float64  `xml:"deltaphi,attr"`
	LUnit    string   `xml:"lunit,attr"`
	AUnit    string   `xml:"aunit,attr"`
}

type sphereSolid struct {
	XMLName    xml.Name `xml:"sphere"`
	Name       string   `xml:"name,attr"`
	Rmin       float64  `xml:"rmin,attr"`
	Rmax       float64  `xml:"rmax,attr"`
	StartPhi   float64  `xml:"startphi,attr"`
	DeltaPhi   float64  `xml:"deltaphi,attr"`
	StartTheta float64  `xml:"starttheta,attr"`
	DeltaTheta float64  `xml:"deltatheta,attr"`
	LUnit      string   `xml:"lunit,attr"`
	AUnit      string   `xml:"aunit,attr"`
}

type polyconeSolid struct {
	XMLName  xml.Name  `xml:"genericPolycone"`
	Name     string    `xml:"name,attr"`
	StartPhi float64   `xml:"startphi,attr"`
	DeltaPhi float64   `xml:"deltaphi,attr"`
	LUnit    string    `xml:"lunit,attr"`
	AUnit    string    `xml:"aunit,attr"`
	Points   []rzPoint `xml:"rzpoint"`
}

type rzPoint struct {
	R float64 `xml:"r,attr"`
	Z float64 `xml:"z,attr"`
}

// booleanSolid covers union and subtraction; the element name is set
// from the operation when the item is built.
type booleanSolid struct {
	XMLName  xml.Name
	Name     string   `xml:"name,attr"`
	First    ref      `xml:"first"`
	Second   ref      `xml:"second"`
	Position position `xml:"position"`
}

type opticalSurfaceDef struct {
	XMLName    xml.Name      `xml:"opticalsurface"`
	Name       string        `xml:"name,attr"`
	Model      string        `xml:"model,attr"`
	Finish     string        `xml:"finish,attr"`
	Type       string        `xml:"type,attr"`
	Value      float64       `xml:"value,attr"`
	Properties []propertyRef `xml:"property"`
}

type ref struct {
	Ref string `xml:"ref,attr"`
}

type position struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
	Unit string  `xml:"unit,attr"`
}

type rotation struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
	Unit string  `xml:"unit,attr"`
}

// structureBlock interleaves volume, bordersurface and skinsurface
// elements in emission order.
type structureBlock struct {
	Items []any
}

type volumeDef struct {
	XMLName     xml.Name  `xml:"volume"`
	Name        string    `xml:"name,attr"`
	MaterialRef ref       `xml:"materialref"`
	SolidRef    ref       `xml:"solidref"`
	PhysVols    []physvol `xml:"physvol"`
}

type physvol struct {
	Name      string    `xml:"name,attr"`
	VolumeRef ref       `xml:"volumeref"`
	Position  position  `xml:"position"`
	Rotation  *rotation `xml:"rotation"`
}

type borderSurfaceDef struct {
	XMLName xml.Name `xml:"bordersurface"`
	Name    string   `xml:"name,attr"`
	Surface string   `xml:"surfaceproperty,attr"`
	Volumes []ref    `xml:"physvolref"`
}

type skinSurfaceDef struct {
	XMLName xml.Name `xml:"skinsurface"`
	Name    string   `xml:"name,attr"`
	Surface string   `xml:"surfaceproperty,attr"`
	Volume  ref      `xml:"volumeref"`
}

type userInfo struct {
	Auxiliary []auxiliary `xml:"auxiliary"`
}

type auxiliary struct {
	Type     string      `xml:"auxtype,attr"`
	Value    string      `xml:"auxvalue,attr"`
	Children []auxiliary `xml:"auxiliary"`
}

type setupBlock struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
	World   ref    `xml:"world"`
}
