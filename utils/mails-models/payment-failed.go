package mailsmodels

import (
	"fmt"

	"github.com/mmanthe37/gear-ai-v1/utils"
)

func PaymentFailed(email string) {
	subject := "Subject: Gear AI CoPilot - payment failed \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1B2A4A; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">We could not process your payment</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">The latest charge for your subscription failed. Your plan stays active while the payment is retried; please update your payment method from the billing portal in the app.</td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p style="font-weight: bold; color: #1B2A4A; text-align:center;">%s</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, "Settings > Subscription > Manage billing")

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
