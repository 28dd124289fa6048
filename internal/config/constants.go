package config

const (
	DefaultDatabasePath = "./geoportal.db"
	DefaultGeoJSONPath  = "./static/maps/nasugbu.geojson"
)
