package notify

import (
	"fmt"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

var severityColors = map[models.AlertSeverity]string{
	models.SeverityInfo:     "#3b82f6",
	models.SeverityWarning:  "#f59e0b",
	models.SeverityCritical: "#ef4444",
}

var severityTitles = map[models.AlertSeverity]string{
	models.SeverityInfo:     "Information",
	models.SeverityWarning:  "Warning",
	models.SeverityCritical: "Critical Alert",
}

var recommendedActions = map[models.AlertType]string{
	models.AlertSoilMoisture: `<ul>
		<li>Check irrigation system immediately</li>
		<li>Water the crop if moisture is below optimal level</li>
		<li>Monitor soil moisture levels daily</li>
		<li>Consider installing drip irrigation for better water management</li>
	</ul>`,
	models.AlertSoilPH: `<ul>
		<li>Test soil pH using a soil testing kit</li>
		<li>Add lime to increase pH if too acidic</li>
		<li>Add sulfur to decrease pH if too alkaline</li>
		<li>Consult with agricultural expert for proper amendments</li>
	</ul>`,
	models.AlertTemperature: `<ul>
		<li>Monitor temperature fluctuations closely</li>
		<li>Provide shade nets if temperature is too high</li>
		<li>Consider mulching to regulate soil temperature</li>
		<li>Adjust irrigation schedule based on temperature</li>
	</ul>`,
	models.AlertWeather: `<ul>
		<li>Prepare for upcoming weather conditions</li>
		<li>Secure crops if strong winds are expected</li>
		<li>Ensure proper drainage for heavy rainfall</li>
		<li>Harvest early if severe weather is predicted</li>
	</ul>`,
	models.AlertDisease: `<ul>
		<li>Inspect crops for visible signs of disease</li>
		<li>Remove and destroy infected plants</li>
		<li>Apply appropriate fungicides or pesticides</li>
		<li>Improve air circulation around plants</li>
		<li>Contact agricultural extension officer for guidance</li>
	</ul>`,
	models.AlertPest: `<ul>
		<li>Identify the pest species affecting your crop</li>
		<li>Use appropriate pest control methods</li>
		<li>Consider biological pest control options</li>
		<li>Monitor pest population regularly</li>
		<li>Maintain field hygiene to prevent infestation</li>
	</ul>`,
	models.AlertMarket: `<ul>
		<li>Review current market prices</li>
		<li>Consider selling if prices are favorable</li>
		<li>Store produce properly if waiting for better prices</li>
		<li>Connect with local buyers and traders</li>
	</ul>`,
}

func AlertSubject(alert models.Alert, crop models.Crop) string {
	title := severityTitles[alert.Severity]
	if title == "" {
		title = "Alert"
	}
	return fmt.Sprintf("%s: %s - %s", title, crop.Name, alert.Message)
}

// AlertTemplate renders the alert notification email body.
func AlertTemplate(alert models.Alert, crop models.Crop, farmerName string) string {
	color := severityColors[alert.Severity]
	if color == "" {
		color = severityColors[models.SeverityInfo]
	}
	title := severityTitles[alert.Severity]
	if title == "" {
		title = "Alert"
	}
	actions := recommendedActions[alert.Type]
	if actions == "" {
		actions = "<p>Please check your dashboard for more details.</p>"
	}

	template := fmt.Sprintf(`
		<html>
		<head>
		<style>
			body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
			.container { max-width: 600px; margin: 0 auto; padding: 20px; }
			.header { background: linear-gradient(135deg, #10b981 0%%, #059669 100%%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
			.alert-box { background: %[1]s15; border-left: 4px solid %[1]s; padding: 20px; margin: 20px 0; border-radius: 5px; }
			.alert-title { color: %[1]s; font-size: 18px; font-weight: bold; margin-bottom: 10px; }
			.content { background: white; padding: 30px; border-radius: 0 0 10px 10px; }
			.crop-info { background: #f3f4f6; padding: 15px; border-radius: 5px; margin: 20px 0; }
			.footer { text-align: center; margin-top: 30px; color: #6b7280; font-size: 14px; }
		</style>
		</head>
		<body>
		<div class="container">
			<div class="header">
				<h1>AgriSense Alert</h1>
				<p>Proactive Agricultural Intelligence System</p>
			</div>
			<div class="content">
				<p>Dear %s,</p>
				<div class="alert-box">
					<div class="alert-title">%s</div>
					<p><strong>%s</strong></p>
				</div>
				<div class="crop-info">
					<h3>Crop Details:</h3>
					<p><strong>Crop:</strong> %s</p>
					<p><strong>Land Area:</strong> %g hectares</p>
					<p><strong>Current Stage:</strong> %s</p>
					<p><strong>Health Status:</strong> %s</p>
					<p><strong>Alert Time:</strong> %s</p>
				</div>
				<h3>Recommended Actions:</h3>
				%s
				<div class="footer">
					<p>This is an automated alert from AgriSense</p>
					<p>Empowering farmers through AI-driven insights</p>
				</div>
			</div>
		</div>
		</body>
		</html>
		`,
		color,
		farmerName,
		title,
		alert.Message,
		crop.Name,
		crop.LandArea,
		crop.CurrentStage,
		crop.HealthStatus,
		alert.Timestamp,
		actions,
	)
	return template
}
