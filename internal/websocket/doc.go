// Package websocket implements the live filter channel of the dashboard.
//
// The browser opens /ws and receives a dataset message describing the loaded
// spreadsheet and its filter options. Every filter message it sends is run
// through the dashboard pipeline and answered, to that client only, with a
// view message carrying the same id or an error message:
//
//	-> {"id":"7","type":"filter","filters":{"clusters":[0],"gap_min":-20}}
//	<- {"id":"7","type":"view","timestamp":"...","data":{...}}
//
// The Hub tracks connected clients for health checks and metrics and can
// push a message to all of them.
package websocket
