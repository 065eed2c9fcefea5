package kernel

// GeoPointDocument is the JSON shape of a GeoPoint.
type GeoPointDocument struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p GeoPoint) ToDocument() GeoPointDocument {
	return GeoPointDocument{Lat: p.lat, Lng: p.lng}
}

// GeoPointFromDocument validates an optional location document.
func GeoPointFromDocument(doc *GeoPointDocument) (*GeoPoint, error) {
	if doc == nil {
		return nil, nil
	}
	p, err := NewGeoPoint(doc.Lat, doc.Lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
