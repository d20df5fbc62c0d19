// Package viz implements the chart types built on the layout engines:
// labelled time series and slope charts, 100% stacked bars, population
// grids, force-directed graphs, legends and free-flowing text annotations.
//
// Every visualization draws onto a *canvas.Canvas. Labels attached to data
// points go through [Labelled], which keeps them from overlapping with the
// label distributor in pkg/labels.
package viz
