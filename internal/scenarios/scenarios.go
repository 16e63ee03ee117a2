// Package scenarios holds the reference FNOL documents used by the scenario
// harness and the pipeline tests.
package scenarios

import "github.com/ppiankov/claimroute/internal/model"

// Scenario is a sample FNOL document and the route it must produce
type Scenario struct {
	Name     string
	Document string
	Expected model.Route
}

// FastTrack is a complete low-value vehicle claim
const FastTrack = `
Policy Number: POL123456
Policyholder Name: John Doe
Policy Effective Dates: 01-01-2024 to 01-01-2025
Incident Date: 15-03-2024
Incident Time: 18:30 PM
Location: Mumbai, Maharashtra
Description: Rear-end collision at traffic signal. Vehicle sustained moderate damage.
Claimant: John Doe
Contact Details: 9876543210
Asset Type: Car
Asset ID: MH12AB1234
Estimated Damage: 8500
Claim Type: Vehicle Damage
Attachments: Photos, FIR
Initial Estimate: 8500
`

// StandardReview is a complete high-value vehicle claim
const StandardReview = `
Policy Number: POL789012
Policyholder Name: Priya Sharma
Policy Effective Dates: 05-06-2023 to 05-06-2024
Incident Date: 20-11-2023
Incident Time: 14:15
Location: Bangalore, Karnataka
Description: Front-end collision with extensive damage requiring full repair.
Claimant: Priya Sharma
Contact Details: 9123456789
Asset Type: Car
Asset ID: KA51CD9876
Estimated Damage: 65000
Claim Type: Vehicle Damage
Attachments: Photos, Police Report
Initial Estimate: 65000
`

// MissingFields carries only part of the mandatory checklist
const MissingFields = `
Policy Number: POL345678
Policyholder Name: Raj Kumar
Incident Date: 10-08-2024
Location: Delhi
Description: Side collision with another vehicle.
`

// FraudIndicators is complete but its description reads as staged
const FraudIndicators = `
Policy Number: POL456789
Policyholder Name: Amit Patel
Policy Effective Dates: 01-01-2024 to 01-01-2025
Incident Date: 12-12-2024
Incident Time: 22:00
Location: Pune, Maharashtra
Description: Staged accident for fraud. Timeline inconsistent with witness statement.
Claimant: Amit Patel
Contact Details: 9988776655
Asset Type: Bike
Asset ID: MH14EF5432
Estimated Damage: 12000
Claim Type: Vehicle Damage
Attachments: Photos
Initial Estimate: 12000
`

// InjuryClaim is complete, above threshold, with a bodily injury claim type
const InjuryClaim = `
Policy Number: POL567890
Policyholder Name: Neha Singh
Policy Effective Dates: 15-05-2023 to 15-05-2025
Incident Date: 02-12-2024
Incident Time: 10:45 AM
Location: Hyderabad, Telangana
Description: Multi-vehicle accident resulting in bodily injuries to both driver and passenger.
Claimant: Neha Singh
Contact Details: 9876543321
Asset Type: Car
Asset ID: TS07EF2345
Estimated Damage: 35000
Claim Type: Bodily Injury
Attachments: Medical Records, FIR, Photos
Initial Estimate: 35000
`

// All returns the five reference scenarios in harness order
func All() []Scenario {
	return []Scenario{
		{Name: "Valid Low-Value Claim (Fast-track)", Document: FastTrack, Expected: model.RouteFastTrack},
		{Name: "High-Value Claim (Standard Review)", Document: StandardReview, Expected: model.RouteStandardReview},
		{Name: "Missing Mandatory Fields (Manual Review)", Document: MissingFields, Expected: model.RouteManualReview},
		{Name: "Fraud Indicators (Investigation Flag)", Document: FraudIndicators, Expected: model.RouteInvestigation},
		{Name: "Injury Claim (Specialist Queue)", Document: InjuryClaim, Expected: model.RouteSpecialistQueue},
	}
}
