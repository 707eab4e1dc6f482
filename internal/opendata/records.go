package opendata

import (
	"retrato/pkg/platform/flex"
)

// Dataset identifiers on the regional portals.
const (
	DatasetMunicipalities   = "registro-de-municipios-de-castilla-y-leon"
	DatasetHealthCenters    = "registro-de-centros-sanitarios-de-castilla-y-leon"
	DatasetEducationCenters = "directorio-de-centros-docentes"
)

// recordsResponse is the v1 records/1.0/search envelope.
type recordsResponse[F any] struct {
	NHits   int         `json:"nhits"`
	Records []record[F] `json:"records"`
}

type record[F any] struct {
	Fields   F         `json:"fields"`
	Geometry *geometry `json:"geometry"`
}

// geometry holds a GeoJSON point: coordinates are [longitude, latitude].
type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type municipalityFields struct {
	CodINE                  flex.Value `json:"cod_ine"`
	CodMunicipio            flex.Value `json:"cod_municipio"`
	Municipio               flex.Value `json:"municipio"`
	Nombre                  flex.Value `json:"nombre"`
	CodProvincia            flex.Value `json:"cod_provincia"`
	Provincia               flex.Value `json:"provincia"`
	CodigosPostales         flex.Value `json:"codigos_postales"`
	Superficie              flex.Value `json:"superficie"`
	Altitud                 flex.Value `json:"altitud"`
	Poblacion               flex.Value `json:"poblacion"`
	Mancomunidades          flex.Value `json:"mancomunidades"`
	EntidadesLocalesMenores flex.Value `json:"entidades_locales_menores"`
	Comercio                flex.Value `json:"comercio"`
}

type healthFields struct {
	NoDeRegistro         flex.Value `json:"no_de_registro"`
	NombreDelCentro      flex.Value `json:"nombre_del_centro"`
	TipoDeCentro         flex.Value `json:"tipo_de_centro"`
	FinalidadAsistencial flex.Value `json:"finalidad_asistencial"`
	DependenciaFuncional flex.Value `json:"dependencia_funcional"`
	Titularidad          flex.Value `json:"titularidad"`
	Direccion            flex.Value `json:"direccion"`
	CodigoPostal         flex.Value `json:"codigo_postal"`
	Telefono             flex.Value `json:"telefono"`
	Email                flex.Value `json:"email"`
	Web                  flex.Value `json:"web"`
}

// catalogResponse is the v2.1 catalog records envelope; results are flat.
type catalogResponse[R any] struct {
	TotalCount int `json:"total_count"`
	Results    []R `json:"results"`
}

type educationRecord struct {
	DenominacionEspecifica   flex.Value `json:"denominacion_especifica"`
	Codigo                   flex.Value `json:"codigo"`
	DenominacionGenerica     flex.Value `json:"denominacion_generica"`
	DenominacionGenericaBrev flex.Value `json:"denominacion_generica_breve"`
	Naturaleza               flex.Value `json:"naturaleza"`
	Via                      flex.Value `json:"via"`
	NombreDeLaVia            flex.Value `json:"nombre_de_la_via"`
	NumeroExt                flex.Value `json:"numero_ext"`
	Numero                   flex.Value `json:"numero"`
	CPostal                  flex.Value `json:"c_postal"`
	Telefono                 flex.Value `json:"telefono"`
	CorreoElectronico        flex.Value `json:"correo_electronico"`
	Web                      flex.Value `json:"web"`
	CursoAcademico           flex.Value `json:"curso_academico"`
	Transporte               flex.Value `json:"transporte"`
	Comedor                  flex.Value `json:"comedor"`
	JornadaContinua          flex.Value `json:"jornada_continua"`
	Internado                flex.Value `json:"internado"`
	Localizacion             *latLon    `json:"localizacion"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
