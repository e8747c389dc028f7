package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/export"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to scenario YAML (built-in reference scenario when empty)")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	sc := scenario.Default()
	if *configPath != "" {
		loaded, err := scenario.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
		sc = loaded
	}
	log.Printf("Scenario loaded: %d months, tariff %.2f/%.2f $/kW/month",
		len(sc.Months), sc.Rates.ContractedPerKWMonth, sc.Rates.ExceedancePerKWMonth)

	// Set up WebSocket hub and session engine
	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	engine := session.New(sc, bridge)

	handler := ws.NewHandler(hub, engine)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	mux.HandleFunc("GET /report.xlsx", func(w http.ResponseWriter, r *http.Request) {
		data, err := export.BuildReportXLSX(sc, engine.Snapshot())
		if err != nil {
			log.Printf("XLSX export error: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="demand-charge-report.xlsx"`)
		w.Write(data)
	})

	mux.HandleFunc("GET /report.pdf", func(w http.ResponseWriter, r *http.Request) {
		data, err := export.BuildReportPDF(sc, engine.Snapshot())
		if err != nil {
			log.Printf("PDF export error: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="demand-charge-report.pdf"`)
		w.Write(data)
	})

	// Serve frontend static files
	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, cors.AllowAll().Handler(mux)); err != nil {
		log.Fatal(err)
	}
}
