package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type fixMessage struct {
	DeviceID       string  `json:"device_id"`
	StudentID      int64   `json:"student_id"`
	SchoolID       int64   `json:"school_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_m"`
	Timestamp      int64   `json:"timestamp"`
}

// Campus reference point used by the simulator (Douala).
const (
	campusLat = 4.0511
	campusLon = 9.7679
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("educafric-mock-devices")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	students := []int64{101, 102, 103, 104, 105}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		studentID := students[rand.Intn(len(students))]

		var lat, lon float64
		// 70% of pings stay on campus, the rest drift off to exercise the
		// zone-exit path
		if rand.Float64() < 0.7 {
			lat = campusLat + (rand.Float64()-0.5)*0.004
			lon = campusLon + (rand.Float64()-0.5)*0.004
		} else {
			lat = campusLat + (rand.Float64()-0.5)*0.2
			lon = campusLon + (rand.Float64()-0.5)*0.2
		}

		msg := fixMessage{
			DeviceID:       fmt.Sprintf("tab-%03d", studentID),
			StudentID:      studentID,
			SchoolID:       1,
			Latitude:       lat,
			Longitude:      lon,
			AccuracyMeters: 5 + rand.Float64()*20,
			Timestamp:      time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/educafric/device/%s/location", msg.DeviceID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
