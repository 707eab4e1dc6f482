package reference

import "retrato/pkg/platform/flex"

// Raw record shapes as published in the data directory.

type municipalityRecord struct {
	CodINE5    flex.Value `json:"CodINE5"`
	Provincia  flex.Value `json:"PROVINCIA"`
	Nombre     flex.Value `json:"NOMBRE_ACTUAL"`
	Poblacion  flex.Value `json:"POBLACION_MUNI"`
	Superficie flex.Value `json:"SUPERFICIE"`
	Longitud   flex.Value `json:"LONGITUD_ETRS89"`
	Latitud    flex.Value `json:"LATITUD_ETRS89"`
	Altitud    flex.Value `json:"ALTITUD"`
}

type postalCodeRecord struct {
	CodINE5 flex.Value `json:"codINE5"`
	CP      flex.Value `json:"CP"`
}

type nomenclatorRecord struct {
	CodINE5     flex.Value `json:"codINE5"`
	Unidad      flex.Value `json:"Unidad"`
	Poblacion   flex.Value `json:"poblacion"`
	Total       flex.Value `json:"total_2024"`
	Hombres     flex.Value `json:"hombres_2024"`
	Mujeres     flex.Value `json:"mujeres_2024"`
	Espanoles   flex.Value `json:"espanoles_2024"`
	Extranjeros flex.Value `json:"extranjeros_2024"`
	De0a14      flex.Value `json:"de0a14"`
	De15a64     flex.Value `json:"de15a64"`
	De65        flex.Value `json:"apartirde65"`
}

// mappingKey is the single combined column of poblacion_ine_mapping.json.
const mappingKey = "poblacion_sin_tilde;poblacion_con_tilde;codINE5"

type economyRecord struct {
	CodINE5            flex.Value `json:"codINE5"`
	TasaParo           flex.Value `json:"tasa_paro"`
	EmpresasActivas    flex.Value `json:"empresas_activas"`
	PorcentajeServicio flex.Value `json:"porcentaje_servicios"`
	RentaPerCapita     flex.Value `json:"renta_per_capita"`
}
