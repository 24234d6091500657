// Package tcctrack detects and tracks Tropical Cloud Clusters (TCCs) in
// time-ordered satellite infrared observations.
//
// Each frame carries a cloud-probability grid alongside brightness
// temperature and geolocation grids. The pipeline thresholds the
// probability grid into a binary mask, labels connected cold-cloud
// regions, classifies them by minimum brightness temperature and hands
// the resulting clusters to a Kalman-filter multi-object tracker which
// maintains persistent track identities across frames.
//
// Key types: Frame, Cluster, Track, TrackObservation, Engine.
//
// The package performs no I/O: frame ingestion (satellite file decoding,
// segmentation inference) and result persistence belong to callers.
package tcctrack
